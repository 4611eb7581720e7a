package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/middleware"
	"github.com/focusnow-app/focusnow-backend/internal/models"
	"github.com/focusnow-app/focusnow-backend/internal/services"
	"github.com/focusnow-app/focusnow-backend/pkg/utils"

	"github.com/google/uuid"
)

// Register Request
type RegisterRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Objetivo string `json:"objetivo,omitempty"`
}

// Login Request
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Auth Response
type AuthResponse struct {
	Mensagem string             `json:"mensagem,omitempty"`
	Token    string             `json:"token,omitempty"`
	User     *models.PublicUser `json:"user,omitempty"`
}

// Register handles POST /api/register.
func Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	req.Nome = strings.TrimSpace(req.Nome)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Nome == "" || req.Email == "" || req.Senha == "" {
		writeError(w, http.StatusBadRequest, "Nome, email e senha são obrigatórios")
		return
	}
	if len(req.Senha) < 6 {
		writeError(w, http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres")
		return
	}

	var existingEmail string
	err := database.PostgresDB.QueryRow(
		"SELECT email FROM usuarios WHERE email = $1", req.Email).Scan(&existingEmail)
	if err == nil {
		writeError(w, http.StatusConflict, "Email já cadastrado")
		return
	} else if err != sql.ErrNoRows {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Senha)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Falha ao processar senha")
		return
	}

	userID := uuid.New()
	_, err = database.PostgresDB.Exec(`
		INSERT INTO usuarios (id, nome, email, senha_hash, objetivo)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, req.Nome, req.Email, hashedPassword, req.Objetivo)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Falha ao criar usuário")
		return
	}

	token, err := services.CreateSession(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Falha ao criar sessão")
		return
	}

	log.Printf("✅ New user registered: %s", req.Email)

	user := models.PublicUser{
		ID:       userID.String(),
		Nome:     req.Nome,
		Email:    req.Email,
		Objetivo: req.Objetivo,
		Nivel:    1,
		XP:       0,
	}
	respondWithSession(w, http.StatusCreated, token, &user, "Usuário criado com sucesso")
}

// Login handles POST /api/login.
func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Senha == "" {
		writeError(w, http.StatusBadRequest, "Email e senha são obrigatórios")
		return
	}

	var user models.User
	err := database.PostgresDB.QueryRow(`
		SELECT id, nome, email, senha_hash, COALESCE(objetivo, ''), nivel, xp
		FROM usuarios WHERE email = $1
	`, req.Email).Scan(&user.ID, &user.Nome, &user.Email, &user.SenhaHash,
		&user.Objetivo, &user.Nivel, &user.XP)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	valid, err := utils.VerifyPassword(req.Senha, user.SenhaHash)
	if err != nil || !valid {
		writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	userID, err := uuid.Parse(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}
	token, err := services.CreateSession(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Falha ao criar sessão")
		return
	}

	pub := user.Public()
	respondWithSession(w, http.StatusOK, token, &pub, "")
}

// Logout handles POST /api/logout.
func Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		services.InvalidateSession(token)
	}
	if cfg.UseCookieAuth() {
		clearSessionCookie(w)
	}
	writeJSON(w, http.StatusOK, map[string]string{"mensagem": "Sessão encerrada"})
}

// Me handles GET /api/me.
func Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	var user models.User
	err := database.PostgresDB.QueryRow(`
		SELECT id, nome, email, COALESCE(objetivo, ''), nivel, xp, criado_em
		FROM usuarios WHERE id = $1
	`, userID).Scan(&user.ID, &user.Nome, &user.Email, &user.Objetivo,
		&user.Nivel, &user.XP, &user.CriadoEm)
	if err == sql.ErrNoRows {
		writeError(w, http.StatusNotFound, "Usuário não encontrado")
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}

// respondWithSession emits the token the way deployment config selects:
// JSON body for bearer clients, HttpOnly cookie for browser clients.
func respondWithSession(w http.ResponseWriter, status int, token string, user *models.PublicUser, mensagem string) {
	resp := AuthResponse{Mensagem: mensagem, User: user}
	if cfg.UseCookieAuth() {
		http.SetCookie(w, &http.Cookie{
			Name:     cfg.AuthCookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(services.SessionDuration),
			HttpOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	} else {
		resp.Token = token
	}
	writeJSON(w, status, resp)
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.AuthCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
