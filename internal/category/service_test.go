package category_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dompetku/internal/category"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

func TestService_Add(t *testing.T) {
	type testCase struct {
		name      string
		params    category.CreateParams
		setupMock func(m *category.MockRepository)
		wantErr   error
	}

	valid := category.CreateParams{
		UserID: "user-1",
		Name:   "  Kopi ",
		Icon:   "☕",
		Color:  "#6F4E37",
		Type:   transaction.TypeExpense,
	}

	withColor := func(color string) category.CreateParams {
		p := valid
		p.Color = color

		return p
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:   "ShortColor",
			params: withColor("#F00"),
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{name: "BadColor", params: withColor("red"), wantErr: category.ErrInvalidColor},
		{name: "FourDigitColor", params: withColor("#FFFF"), wantErr: category.ErrInvalidColor},
		{name: "EmptyColor", params: withColor(""), wantErr: category.ErrColorRequired},
		{name: "MissingUser", params: category.CreateParams{Name: "x"}, wantErr: category.ErrUserIDRequired},
		{name: "MissingName", params: category.CreateParams{UserID: "u"}, wantErr: category.ErrNameRequired},
		{
			name:    "InvalidType",
			params:  category.CreateParams{UserID: "u", Name: "x", Icon: "i", Color: "#FFF", Type: "both"},
			wantErr: category.ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := category.NewService(repo).Add(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Kopi", got.Name)
			assert.False(t, got.IsDefault)
		})
	}
}

func TestService_Update(t *testing.T) {
	id := uuid.New()
	name := " Ngopi "

	ctrl := gomock.NewController(t)
	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().
		GetCategory(gomock.Any(), id).
		Return(&category.Category{ID: id, UserID: "user-1", Name: "Kopi", Icon: "☕", Color: "#FFF"}, nil)
	repo.EXPECT().UpdateCategory(gomock.Any(), gomock.Any()).Return(nil)

	svc := category.NewService(repo)

	got, err := svc.Update(context.Background(), "user-1", id, category.UpdateParams{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ngopi", got.Name)
	assert.Equal(t, "☕", got.Icon)

	_, err = svc.Update(context.Background(), "user-1", id, category.UpdateParams{})
	assert.ErrorIs(t, err, category.ErrNoFields)
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name      string
		userID    string
		existing  *category.Category
		expectDel bool
		wantErr   error
	}{
		{"Owner", "user-1", &category.Category{ID: id, UserID: "user-1"}, true, nil},
		{"Default", "user-1", &category.Category{ID: id, UserID: "user-1", IsDefault: true}, false, category.ErrDefaultLocked},
		{"OtherUser", "user-2", &category.Category{ID: id, UserID: "user-1"}, false, category.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := category.NewMockRepository(ctrl)
			repo.EXPECT().GetCategory(gomock.Any(), id).Return(tt.existing, nil)

			if tt.expectDel {
				repo.EXPECT().DeleteCategory(gomock.Any(), id).Return(nil)
			}

			err := category.NewService(repo).Delete(context.Background(), tt.userID, id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_InitializeDefaults(t *testing.T) {
	t.Run("Seeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := category.NewMockRepository(ctrl)
		repo.EXPECT().ListCategories(gomock.Any(), "user-1", nil).Return(nil, nil)
		repo.EXPECT().CreateCategories(gomock.Any(), gomock.Len(13)).Return(nil)

		got, err := category.NewService(repo).InitializeDefaults(context.Background(), "user-1")
		require.NoError(t, err)

		var income, expense int

		for _, c := range got {
			assert.True(t, c.IsDefault)
			assert.Equal(t, "user-1", c.UserID)

			switch c.Type {
			case transaction.TypeIncome:
				income++
			case transaction.TypeExpense:
				expense++
			}
		}

		assert.Equal(t, 8, expense)
		assert.Equal(t, 5, income)
	})

	t.Run("AlreadySeeded", func(t *testing.T) {
		existing := []*category.Category{{Name: "Salary", IsDefault: true}}

		ctrl := gomock.NewController(t)
		repo := category.NewMockRepository(ctrl)
		repo.EXPECT().ListCategories(gomock.Any(), "user-1", nil).Return(existing, nil)

		got, err := category.NewService(repo).InitializeDefaults(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, existing, got)
	})
}

func TestService_Verify(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *category.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Owned",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, UserID: "user-1"}, nil)
			},
		},
		{
			name: "Unknown",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(nil, category.ErrNotFound)
			},
			wantErr: category.ErrNotFound,
		},
		{
			name: "OtherUser",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id, UserID: "user-2"}, nil)
			},
			wantErr: category.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := category.NewMockRepository(ctrl)
			tt.setupMock(repo)

			err := category.NewService(repo).Verify(context.Background(), "user-1", id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}
