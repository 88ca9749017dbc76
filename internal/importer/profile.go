package importer

// Profile describes the header names of one CSV layout. Headers are matched
// case-insensitively.
type Profile struct {
	Name        string
	DateCol     string
	TypeCol     string
	CategoryCol string
	AmountCol   string
	NoteCol     string // optional
}

func (p Profile) requiredCols() []string {
	return []string{p.DateCol, p.TypeCol, p.CategoryCol, p.AmountCol}
}

var profiles = []Profile{
	{
		Name:        "english",
		DateCol:     "date",
		TypeCol:     "type",
		CategoryCol: "category",
		AmountCol:   "amount",
		NoteCol:     "note",
	},
	{
		Name:        "indonesian",
		DateCol:     "tanggal",
		TypeCol:     "tipe",
		CategoryCol: "kategori",
		AmountCol:   "jumlah",
		NoteCol:     "catatan",
	},
	{
		Name:        "indonesian-jenis",
		DateCol:     "tanggal",
		TypeCol:     "jenis",
		CategoryCol: "kategori",
		AmountCol:   "jumlah",
		NoteCol:     "keterangan",
	},
}
