package scenario_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

// fakeUserService is an in-memory stand-in for the service under test,
// implementing just enough of its API surface for the scenario to complete:
// the response envelope, JWT bearer auth, role-gated user management, and
// the usernameOrEmail login contract. The reject/fail knobs simulate the
// degraded deployments the suite has to tolerate.
type fakeUserService struct {
	t      *testing.T
	secret []byte

	// adminLoginStatus rejects logins for the named accounts with the given
	// status instead of authenticating them.
	adminLoginStatus   map[string]int
	failRegisterPrefix string
	healthStatus       int

	mu            sync.Mutex
	users         map[string]*fakeUser
	nextID        int
	registrations int
	created       []int
	fetched       []int
	updated       []int
	deleted       []int
	lastUpdate    updateRequest
}

type fakeUser struct {
	id       int
	username string
	email    string
	password string
	admin    bool
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type createUserRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type updateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// startFakeService seeds the standard admin accounts, applies the optional
// configuration, and serves the fake over a local listener torn down with
// the test.
func startFakeService(t *testing.T, configure func(*fakeUserService)) (*fakeUserService, string) {
	t.Helper()
	f := &fakeUserService{
		t:            t,
		secret:       []byte("fake-user-service-secret"),
		healthStatus: http.StatusOK,
		users:        make(map[string]*fakeUser),
		nextID:       1,
	}
	f.addUser("sysadmin", "sysadmin@arcana.local", "Admin123", true)
	f.addUser("testadmin", "testadmin@arcana.local", "Admin123", true)
	if configure != nil {
		configure(f)
	}

	r := chi.NewRouter()
	f.routes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return f, server.URL
}

func (f *fakeUserService) routes(r chi.Router) {
	r.Get("/actuator/health", f.handleHealth)
	r.Post("/api/v1/auth/register", f.handleRegister)
	r.Post("/api/v1/auth/login", f.handleLogin)
	r.Post("/api/v1/auth/refresh", f.handleRefresh)
	r.Post("/api/v1/auth/logout", f.handleLogout)
	r.Get("/api/v1/me", f.handleMe)
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(f.requireAdmin)
		r.Get("/", f.handleListUsers)
		r.Post("/", f.handleCreateUser)
		r.Get("/{id}", f.handleGetUser)
		r.Put("/{id}", f.handleUpdateUser)
		r.Delete("/{id}", f.handleDeleteUser)
	})
}

func (f *fakeUserService) handleHealth(w http.ResponseWriter, r *http.Request) {
	f.writeJSON(w, f.healthStatus, map[string]interface{}{"status": "UP"})
}

func (f *fakeUserService) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !f.decode(r, &req) || req.Username == "" {
		f.writeError(w, http.StatusBadRequest, "Invalid registration payload")
		return
	}
	f.mu.Lock()
	f.registrations++
	f.mu.Unlock()

	if f.failRegisterPrefix != "" && strings.HasPrefix(req.Username, f.failRegisterPrefix) {
		f.writeError(w, http.StatusInternalServerError, "Registration unavailable")
		return
	}

	f.mu.Lock()
	if f.findByUsernameOrEmail(req.Username) != nil {
		f.mu.Unlock()
		f.writeError(w, http.StatusConflict, "Username already taken")
		return
	}
	f.mu.Unlock()

	user := f.addUser(req.Username, req.Email, req.Password, false)
	f.writeJSON(w, http.StatusCreated, f.authEnvelope(user))
}

func (f *fakeUserService) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !f.decode(r, &req) {
		f.writeError(w, http.StatusBadRequest, "Invalid login payload")
		return
	}
	f.mu.Lock()
	user := f.findByUsernameOrEmail(req.UsernameOrEmail)
	f.mu.Unlock()

	if user == nil || user.password != req.Password {
		f.writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if status, rejected := f.adminLoginStatus[user.username]; rejected {
		f.writeError(w, status, "Invalid credentials")
		return
	}
	f.writeJSON(w, http.StatusOK, f.authEnvelope(user))
}

func (f *fakeUserService) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !f.decode(r, &req) {
		f.writeError(w, http.StatusBadRequest, "Invalid refresh payload")
		return
	}
	user, typ, ok := f.parseToken(req.RefreshToken)
	if !ok || typ != "refresh" {
		f.writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	f.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"accessToken": f.issueToken(user, "access"),
		},
	})
}

func (f *fakeUserService) handleLogout(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := f.authenticate(r); !ok {
		f.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	f.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Logged out"})
}

func (f *fakeUserService) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _, ok := f.authenticate(r)
	if !ok {
		f.writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	f.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": f.userJSON(user)})
}

func (f *fakeUserService) handleListUsers(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	list := make([]map[string]interface{}, 0, len(f.users))
	for _, u := range f.users {
		list = append(list, f.userJSON(u))
	}
	f.mu.Unlock()
	f.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": list})
}

func (f *fakeUserService) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !f.decode(r, &req) || req.Username == "" {
		f.writeError(w, http.StatusBadRequest, "Invalid user payload")
		return
	}
	user := f.addUser(req.Username, req.Email, req.Password, false)
	f.mu.Lock()
	f.created = append(f.created, user.id)
	f.mu.Unlock()
	f.writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "data": f.userJSON(user)})
}

func (f *fakeUserService) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		f.writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	f.mu.Lock()
	f.fetched = append(f.fetched, id)
	user := f.findByID(id)
	f.mu.Unlock()
	if user == nil {
		f.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	f.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": f.userJSON(user)})
}

func (f *fakeUserService) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		f.writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	var req updateRequest
	if !f.decode(r, &req) {
		f.writeError(w, http.StatusBadRequest, "Invalid update payload")
		return
	}
	f.mu.Lock()
	user := f.findByID(id)
	if user != nil {
		f.updated = append(f.updated, id)
		f.lastUpdate = req
	}
	f.mu.Unlock()
	if user == nil {
		f.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	f.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": f.userJSON(user)})
}

func (f *fakeUserService) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		f.writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	f.mu.Lock()
	user := f.findByID(id)
	if user != nil {
		delete(f.users, user.username)
		f.deleted = append(f.deleted, id)
	}
	f.mu.Unlock()
	if user == nil {
		f.writeError(w, http.StatusNotFound, "User not found")
		return
	}
	f.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "User deleted successfully"})
}

func (f *fakeUserService) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := f.authenticate(r)
		if !ok || !user.admin {
			f.writeError(w, http.StatusForbidden, "Access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeUserService) authenticate(r *http.Request) (*fakeUser, string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, "", false
	}
	return f.parseToken(strings.TrimPrefix(header, "Bearer "))
}

func (f *fakeUserService) parseToken(raw string) (*fakeUser, string, bool) {
	token, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) { return f.secret, nil })
	if err != nil || !token.Valid {
		return nil, "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "", false
	}
	sub, _ := claims["sub"].(string)
	typ, _ := claims["typ"].(string)

	f.mu.Lock()
	user := f.users[sub]
	f.mu.Unlock()
	if user == nil {
		return nil, "", false
	}
	return user, typ, true
}

func (f *fakeUserService) issueToken(u *fakeUser, typ string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": u.username,
		"uid": u.id,
		"typ": typ,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(f.secret)
	if err != nil {
		f.t.Errorf("signing fake token: %v", err)
		return ""
	}
	return signed
}

func (f *fakeUserService) addUser(username, email, password string, admin bool) *fakeUser {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := &fakeUser{id: f.nextID, username: username, email: email, password: password, admin: admin}
	f.nextID++
	f.users[username] = u
	return u
}

// findByUsernameOrEmail and findByID expect f.mu to be held.
func (f *fakeUserService) findByUsernameOrEmail(s string) *fakeUser {
	for _, u := range f.users {
		if u.username == s || u.email == s {
			return u
		}
	}
	return nil
}

func (f *fakeUserService) findByID(id int) *fakeUser {
	for _, u := range f.users {
		if u.id == id {
			return u
		}
	}
	return nil
}

func (f *fakeUserService) userIDByPrefix(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.HasPrefix(u.username, prefix) {
			return u.id
		}
	}
	return 0
}

func (f *fakeUserService) registrationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registrations
}

func (f *fakeUserService) authEnvelope(u *fakeUser) map[string]interface{} {
	return map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"accessToken":  f.issueToken(u, "access"),
			"refreshToken": f.issueToken(u, "refresh"),
			"user":         f.userJSON(u),
		},
	}
}

func (f *fakeUserService) userJSON(u *fakeUser) map[string]interface{} {
	return map[string]interface{}{
		"id":       u.id,
		"username": u.username,
		"email":    u.email,
	}
}

func (f *fakeUserService) decode(r *http.Request, into interface{}) bool {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return false
	}
	return sonic.Unmarshal(data, into) == nil
}

func (f *fakeUserService) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	data, err := sonic.Marshal(payload)
	if err != nil {
		f.t.Errorf("marshaling fake response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (f *fakeUserService) writeError(w http.ResponseWriter, status int, message string) {
	f.writeJSON(w, status, map[string]interface{}{"success": false, "message": message})
}
