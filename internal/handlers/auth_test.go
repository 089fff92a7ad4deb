package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"tibeb_back_end/internal/models"
	"tibeb_back_end/internal/utils"
)

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignup_HappyPath(t *testing.T) {
	users := newFakeUsers()
	r := gin.New()
	r.POST("/api/signup", Signup(users))

	body := `{"firstName":"Sami","lastName":"Embaye","email":"Sami@Tibeb.et","password":"s3cret","confirmPassword":"s3cret"}`
	w := postJSON(r, "/api/signup", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json invalide: %v", err)
	}
	if resp.Token == "" {
		t.Error("un token doit être émis à l'inscription")
	}
	if resp.User.Email != "sami@tibeb.et" {
		t.Errorf("email=%q, attendu normalisé en minuscules", resp.User.Email)
	}
	if resp.User.Role != models.RoleUser {
		t.Errorf("role=%q, attendu %q", resp.User.Role, models.RoleUser)
	}

	// Le hash stocké doit vérifier le mot de passe, jamais l'égaler
	stored, err := users.GetByEmail(context.Background(), "sami@tibeb.et")
	if err != nil {
		t.Fatalf("utilisateur non persisté: %v", err)
	}
	if stored.PasswordHash == "s3cret" || !utils.CheckPassword(stored.PasswordHash, "s3cret") {
		t.Error("le mot de passe doit être stocké hashé")
	}
}

func TestSignup_MismatchedConfirmPassword(t *testing.T) {
	users := newFakeUsers()
	r := gin.New()
	r.POST("/api/signup", Signup(users))

	body := `{"firstName":"Sami","lastName":"Embaye","email":"sami@tibeb.et","password":"abc","confirmPassword":"xyz"}`
	w := postJSON(r, "/api/signup", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, attendu 400", w.Code)
	}
	if len(users.users) != 0 {
		t.Error("aucun utilisateur ne doit être créé")
	}
}

func TestSignup_MissingFields(t *testing.T) {
	users := newFakeUsers()
	r := gin.New()
	r.POST("/api/signup", Signup(users))

	w := postJSON(r, "/api/signup", `{"email":"sami@tibeb.et","password":"abc"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, attendu 400", w.Code)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	r := gin.New()
	r.POST("/api/signup", Signup(users))

	body := `{"firstName":"Sami","lastName":"Embaye","email":"sami@tibeb.et","password":"abc","confirmPassword":"abc"}`
	if w := postJSON(r, "/api/signup", body); w.Code != http.StatusCreated {
		t.Fatalf("première inscription: status=%d", w.Code)
	}
	if w := postJSON(r, "/api/signup", body); w.Code != http.StatusConflict {
		t.Fatalf("status=%d, attendu 409", w.Code)
	}
}

func signupUser(t *testing.T, users *fakeUsers, email, password string) {
	t.Helper()
	r := gin.New()
	r.POST("/api/signup", Signup(users))
	body := `{"firstName":"Sami","lastName":"Embaye","email":"` + email + `","password":"` + password + `","confirmPassword":"` + password + `"}`
	if w := postJSON(r, "/api/signup", body); w.Code != http.StatusCreated {
		t.Fatalf("inscription préalable: status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestSignin_HappyPath(t *testing.T) {
	users := newFakeUsers()
	signupUser(t, users, "sami@tibeb.et", "s3cret")

	r := gin.New()
	r.POST("/api/signin", Signin(users, nil))

	w := postJSON(r, "/api/signin", `{"email":"sami@tibeb.et","password":"s3cret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Token == "" {
		t.Error("un token doit être émis à la connexion")
	}
}

func TestSignin_WrongPassword(t *testing.T) {
	users := newFakeUsers()
	signupUser(t, users, "sami@tibeb.et", "s3cret")

	r := gin.New()
	r.POST("/api/signin", Signin(users, nil))

	w := postJSON(r, "/api/signin", `{"email":"sami@tibeb.et","password":"mauvais"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, attendu 401", w.Code)
	}

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if _, ok := resp["token"]; ok {
		t.Error("aucun token ne doit être émis sur mauvais mot de passe")
	}
}

func TestSignin_UnknownEmail(t *testing.T) {
	r := gin.New()
	r.POST("/api/signin", Signin(newFakeUsers(), nil))

	w := postJSON(r, "/api/signin", `{"email":"inconnu@tibeb.et","password":"x"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, attendu 401", w.Code)
	}
}

func TestSignin_MissingFields(t *testing.T) {
	r := gin.New()
	r.POST("/api/signin", Signin(newFakeUsers(), nil))

	w := postJSON(r, "/api/signin", `{"email":"sami@tibeb.et"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, attendu 400", w.Code)
	}
}
