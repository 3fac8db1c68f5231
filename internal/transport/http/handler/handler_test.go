package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"shop-backend/internal/core/auth"
	"shop-backend/internal/domain"
	"shop-backend/internal/service"
)

type memUserRepo struct{ users map[string]*domain.User }

func (r *memUserRepo) Create(u *domain.User) error {
	for _, ex := range r.users {
		if ex.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}
func (r *memUserRepo) FindByID(id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}
func (r *memUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) ListByRole(role string) ([]domain.User, error) { return nil, nil }
func (r *memUserRepo) Update(u *domain.User) error                   { return nil }
func (r *memUserRepo) Delete(id string) error                        { return nil }

type memProductRepo struct{ products map[string]*domain.Product }

func (r *memProductRepo) Create(p *domain.Product) error {
	for _, ex := range r.products {
		if ex.Name == p.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}
func (r *memProductRepo) FindByID(id string) (*domain.Product, error) {
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}
func (r *memProductRepo) FindByName(name string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}
func (r *memProductRepo) Update(p *domain.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}
func (r *memProductRepo) Delete(id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type memStore struct{ saved []string }

func (s *memStore) Save(fh *multipart.FileHeader) (string, error) {
	ref := "uploads/" + fh.Filename
	s.saved = append(s.saved, ref)
	return ref, nil
}
func (s *memStore) Remove(ref string) error { return nil }

func testRouters(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()
	jwter := &auth.JWTer{Secret: []byte("s3cret"), Issuer: "shop-backend", TTL: 4 * time.Hour}

	userSvc := service.NewUserService(&memUserRepo{users: map[string]*domain.User{}}, jwter, bcrypt.MinCost)
	productSvc := service.NewProductService(&memProductRepo{products: map[string]*domain.Product{}}, &memStore{}, nil, 0, log)

	uh := NewUserHandler(userSvc, log)
	ph := NewProductHandler(productSvc, log)

	r := gin.New()
	r.POST("/api/users/signup", uh.Signup)
	r.POST("/api/users/login", uh.Login)
	r.GET("/api/products", ph.List)
	r.POST("/api/products/new", ph.Create)
	r.PATCH("/api/products/:id", ph.Update)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupValidation(t *testing.T) {
	r := testRouters(t)

	// short password
	w := postJSON(r, "/api/users/signup", `{"name":"alice","email":"a@b.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// short name
	w = postJSON(r, "/api/users/signup", `{"name":"al","email":"a@b.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// malformed email
	w = postJSON(r, "/api/users/signup", `{"name":"alice","email":"nope","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupLoginFlow(t *testing.T) {
	r := testRouters(t)

	w := postJSON(r, "/api/users/signup", `{"name":"alice","email":"a@b.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID    string `json:"id"`
		Role  string `json:"role"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.Token)
	assert.Equal(t, domain.RoleUser, created.Role)
	// the hash never appears in a response body
	assert.NotContains(t, w.Body.String(), "password")

	// duplicate email
	w = postJSON(r, "/api/users/signup", `{"name":"bob","email":"a@b.com","password":"secret2"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(r, "/api/users/login", `{"email":"a@b.com","password":"secret1"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/api/users/login", `{"email":"a@b.com","password":"wrongpw"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func multipartProduct(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if withImage {
		fw, err := w.CreateFormFile("image", "shirt.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("img"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCreateProductHandler(t *testing.T) {
	r := testRouters(t)

	post := func(fields map[string]string, withImage bool) *httptest.ResponseRecorder {
		body, ctype := multipartProduct(t, fields, withImage)
		req := httptest.NewRequest(http.MethodPost, "/api/products/new", body)
		req.Header.Set("Content-Type", ctype)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	valid := map[string]string{
		"name":        "shirt",
		"description": "a plain shirt",
		"price":       "19.99",
		"category":    "men",
		"productType": "clothes",
	}

	t.Run("non-numeric price", func(t *testing.T) {
		bad := map[string]string{"name": "shirt", "description": "d", "price": "abc"}
		assert.Equal(t, http.StatusBadRequest, post(bad, true).Code)
	})

	t.Run("missing image", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, post(valid, false).Code)
	})

	t.Run("valid create is retrievable", func(t *testing.T) {
		w := post(valid, true)
		require.Equal(t, http.StatusCreated, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		lw := httptest.NewRecorder()
		r.ServeHTTP(lw, req)
		require.Equal(t, http.StatusOK, lw.Code)

		var out struct {
			Products []domain.Product `json:"products"`
		}
		require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &out))
		require.Len(t, out.Products, 1)
		assert.Equal(t, "shirt", out.Products[0].Name)
		assert.Equal(t, 19.99, out.Products[0].Price)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		assert.Equal(t, http.StatusConflict, post(valid, true).Code)
	})
}

func TestUpdateProductHandlerRequiresDescription(t *testing.T) {
	r := testRouters(t)

	req := httptest.NewRequest(http.MethodPatch, "/api/products/some-id", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
