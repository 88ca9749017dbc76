package auth

import "time"

func (a *Authenticator) SetNow(now func() time.Time) {
	a.now = now
}
