// Package httpapi exposes the book service over HTTP/JSON: login issues
// session tokens, and the book endpoints are gated by bearer-token middleware.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"bookManagement/internal/auth"
	"bookManagement/models"
	"bookManagement/repository"
)

const (
	minPublicationYear = 1900
	maxPublicationYear = 9999
)

// API ties the access guard and the per-scope record stores to the HTTP surface.
type API struct {
	Auth       *auth.Authenticator
	Books      repository.BookRepositoryI // general scope
	AdminBooks repository.BookRepositoryI // administrator scope
}

// Routes wires the handlers onto a mux. Callers typically wrap the result in
// WithRequestLog.
func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", a.Login)
	mux.HandleFunc("/home", a.RequireAuth(a.Home))
	mux.HandleFunc("/addBook", a.RequireAdmin(a.AddBook))
	mux.HandleFunc("/deleteBook", a.RequireAdmin(a.DeleteBook))
	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, 1<<20))
}

// internalError logs full detail server-side and returns a generic message,
// so file paths never leak to the caller.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("http: %s %s: %v", r.Method, r.URL.Path, err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
}

// RequireAuth extracts and verifies the bearer token and injects the
// Principal into the request context. Missing token is 401; a malformed or
// invalid one is 403.
func (a *API) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
			return
		}
		p, err := a.Auth.VerifyToken(token)
		if err != nil {
			writeJSON(w, http.StatusForbidden, map[string]any{"message": "Forbidden"})
			return
		}
		next(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
	}
}

// RequireAdmin is RequireAuth plus an administrator-role check.
func (a *API) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return a.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		if p == nil || !p.Role.IsAdmin() {
			writeJSON(w, http.StatusForbidden, map[string]any{"message": "Forbidden - Admin access required"})
			return
		}
		next(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Login verifies a credential triple and returns a session token.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad body"})
		return
	}
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad json"})
		return
	}

	token, err := a.Auth.Login(req.Username, req.Password, req.Role)
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Username, password, and role are required"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
	case errors.Is(err, auth.ErrRoleMismatch):
		writeJSON(w, http.StatusForbidden, map[string]any{"message": "Unauthorized role"})
	case err != nil:
		internalError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"token": token})
	}
}

// Home lists the general scope's books; administrators additionally see the
// administrator scope's books, concatenated after the general ones.
func (a *API) Home(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
		return
	}
	p, _ := auth.FromContext(r.Context())
	if p == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Unauthorized"})
		return
	}

	books, err := a.Books.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if p.Role.IsAdmin() {
		adminBooks, err := a.AdminBooks.List(r.Context())
		if err != nil {
			internalError(w, r, err)
			return
		}
		books = append(books, adminBooks...)
	}
	if books == nil {
		books = []models.Book{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"books": books})
}

// AddBook validates the request shape and appends to the general scope.
// Validation failures report per-field errors; store failures are generic 500s.
func (a *API) AddBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad body"})
		return
	}
	var req struct {
		Name   string `json:"name"`
		Author string `json:"author"`
		Year   int    `json:"year"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad json"})
		return
	}

	fieldErrs := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fieldErrs["name"] = "name is required"
	}
	if strings.TrimSpace(req.Author) == "" {
		fieldErrs["author"] = "author is required"
	}
	if req.Year < minPublicationYear || req.Year > maxPublicationYear {
		fieldErrs["year"] = fmt.Sprintf("year must be an integer between %d and %d", minPublicationYear, maxPublicationYear)
	}
	if len(fieldErrs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": fieldErrs})
		return
	}

	book := models.Book{Name: req.Name, Author: req.Author, PublicationYear: req.Year}
	if err := a.Books.Append(r.Context(), book); err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Book added successfully"})
}

// DeleteBook removes a record from the general scope by name.
func (a *API) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
		return
	}
	body, err := readBody(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad body"})
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad json"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Book Name is required"})
		return
	}

	err = a.Books.DeleteByName(r.Context(), req.Name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "Book not found"})
	case err != nil:
		internalError(w, r, err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"message": "Book deleted successfully"})
	}
}
