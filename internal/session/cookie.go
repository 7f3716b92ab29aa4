package session

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	cookieName  = "musicgen_session"
	cookieIDKey = "id"
)

// Manager ties the signed session cookie to in-memory State
type Manager struct {
	cookies sessions.Store
	states  *Store
	maxAge  time.Duration
	secure  bool
}

// NewManager creates a manager signing cookies with secret
func NewManager(secret string, states *Store, maxAge time.Duration, secure bool) *Manager {
	return &Manager{
		cookies: sessions.NewCookieStore([]byte(secret)),
		states:  states,
		maxAge:  maxAge,
		secure:  secure,
	}
}

// States returns the underlying state store
func (m *Manager) States() *Store {
	return m.states
}

// Load returns the State for the request, issuing a new cookie when needed
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (*State, error) {
	// A cookie that fails verification yields a fresh session, not an error
	sess, _ := m.cookies.Get(r, cookieName)

	id, _ := sess.Values[cookieIDKey].(string)
	st := m.states.Get(id)
	if st.ID == id {
		return st, nil
	}

	sess.Values[cookieIDKey] = st.ID
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if err := sess.Save(r, w); err != nil {
		return nil, err
	}
	return st, nil
}
