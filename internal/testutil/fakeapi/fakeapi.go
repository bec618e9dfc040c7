// Package fakeapi serves an in-memory TaskGenie backend for tests. It speaks
// the same HTTP contract as the real service: bcrypt-hashed accounts, HS256
// bearer tokens, and the /api/task resource.
package fakeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"taskgenie/internal/service"
)

// Request is a recorded inbound request.
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	RequestID     string
	UserAgent     string
}

type account struct {
	id       string
	name     string
	email    string
	password []byte
}

type failure struct {
	status  int
	message string
}

// Server is a running fake backend.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	secret   []byte
	accounts map[string]account // by email
	tasks    []service.Task
	owners   map[string]string // task id -> user id
	requests []Request
	failures map[string]failure // "METHOD path" -> one-shot failure
}

// New starts a fake backend. Close it when done.
func New() *Server {
	s := &Server{
		secret:   []byte("fakeapi-secret"),
		accounts: make(map[string]account),
		owners:   make(map[string]string),
		failures: make(map[string]failure),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{v: validator.New()}
	e.Use(s.record, s.inject)

	e.POST("/api/user/register", s.register)
	e.POST("/api/user/login", s.login)

	g := e.Group("/api/task", s.authenticate)
	g.GET("", s.listTasks)
	g.POST("", s.createTask)
	g.GET("/user/:id", s.listUserTasks)
	g.GET("/:id", s.getTask)
	g.PUT("/:id", s.putTask)
	g.DELETE("/:id", s.deleteTask)

	s.Server = httptest.NewServer(e)
	return s
}

// Seed appends tasks owned by userID in the given order.
func (s *Server) Seed(userID string, tasks ...service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		s.tasks = append(s.tasks, t)
		s.owners[t.ID] = userID
	}
}

// Tasks returns a copy of the stored tasks.
func (s *Server) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Requests returns the recorded requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Fail makes the next request matching method and path answer with status
// and a {"message": message} body.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+path] = failure{status: status, message: message}
}

// Token mints a bearer token for userID.
func (s *Server) Token(userID string) string {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return signed
}

type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i any) error {
	if err := rv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}
	return nil
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get("X-Request-ID"),
			UserAgent:     r.UserAgent(),
		})
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) inject(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Method + " " + c.Request().URL.Path
		s.mu.Lock()
		f, ok := s.failures[key]
		delete(s.failures, key)
		s.mu.Unlock()
		if ok {
			return c.JSON(f.status, map[string]string{"message": f.message})
		}
		return next(c)
	}
}

func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := strings.CutPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Not authorized, no token"})
		}
		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		})
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Not authorized, token failed"})
		}
		id, _ := claims["id"].(string)
		c.Set("user", id)
		return next(c)
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if _, exists := s.accounts[strings.ToLower(req.Email)]; exists {
		s.mu.Unlock()
		return c.JSON(http.StatusConflict, map[string]string{"message": "User already exists"})
	}
	acct := account{id: uuid.NewString(), name: req.Name, email: req.Email, password: hash}
	s.accounts[strings.ToLower(req.Email)] = acct
	s.mu.Unlock()

	return c.JSON(http.StatusCreated, s.accountRecord(acct))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s.mu.Lock()
	acct, ok := s.accounts[strings.ToLower(req.Email)]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.password, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid email or password"})
	}
	return c.JSON(http.StatusOK, s.accountRecord(acct))
}

func (s *Server) accountRecord(a account) service.Account {
	return service.Account{ID: a.id, Name: a.name, Email: a.email, Token: s.Token(a.id)}
}

func (s *Server) listTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Tasks())
}

func (s *Server) listUserTasks(c echo.Context) error {
	userID := c.Param("id")
	s.mu.Lock()
	out := []service.Task{}
	for _, t := range s.tasks {
		if s.owners[t.ID] == userID {
			out = append(out, t)
		}
	}
	s.mu.Unlock()
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getTask(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(c.Param("id"))
	if i < 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Task not found"})
	}
	return c.JSON(http.StatusOK, s.tasks[i])
}

func (s *Server) createTask(c echo.Context) error {
	var draft service.TaskDraft
	if err := c.Bind(&draft); err != nil {
		return err
	}
	if strings.TrimSpace(draft.Content) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "content is required"})
	}

	task := service.Task{
		ID:      uuid.NewString(),
		Title:   draft.Content,
		Status:  service.StatusToDo,
		DueDate: draft.Date,
	}
	userID, _ := c.Get("user").(string)

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.owners[task.ID] = userID
	s.mu.Unlock()

	return c.JSON(http.StatusCreated, task)
}

func (s *Server) putTask(c echo.Context) error {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(c.Request().Body).Decode(&raw); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid JSON body"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(c.Param("id"))
	if i < 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Task not found"})
	}
	task := s.tasks[i]

	if _, isDraft := raw["content"]; isDraft {
		var draft service.TaskDraft
		if err := remarshal(raw, &draft); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
		}
		task.Title = draft.Content
		task.DueDate = draft.Date
	} else {
		var full service.Task
		if err := remarshal(raw, &full); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
		}
		if !full.Status.Valid() {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": fmt.Sprintf("invalid status: %q", full.Status)})
		}
		full.ID = task.ID
		task = full
	}

	s.tasks[i] = task
	return c.JSON(http.StatusOK, task)
}

func (s *Server) deleteTask(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(c.Param("id"))
	if i < 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Task not found"})
	}
	delete(s.owners, s.tasks[i].ID)
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return c.JSON(http.StatusOK, service.Confirmation{Message: "Task deleted"})
}

// indexOf must be called with mu held.
func (s *Server) indexOf(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func remarshal(raw map[string]json.RawMessage, out any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
