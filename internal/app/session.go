package app

import "net/http"

type sessionKey string

const (
	SessionKeyAccountId = sessionKey("accountID")
	SessionKeyIsAdmin   = sessionKey("isAdmin")
)

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) contextGetAccountId(r *http.Request) int {
	accountId, ok := r.Context().Value(SessionKeyAccountId).(int)
	if !ok {
		panic("missing account id from context")
	}

	return accountId
}
