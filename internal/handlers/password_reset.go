package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/focusnow-app/focusnow-backend/internal/database"
	"github.com/focusnow-app/focusnow-backend/internal/services"
	"github.com/focusnow-app/focusnow-backend/pkg/utils"

	"github.com/google/uuid"
)

const (
	resetTokenDuration = 1 * time.Hour
	// resetCooldown throttles repeated requests for the same email so
	// the endpoint cannot be used to spam an inbox.
	resetCooldown = 5 * time.Minute

	resetNeutralMessage = "Se o email existir, enviaremos instruções de redefinição"
)

// ForgotPassword handles POST /api/forgot-password. The response never
// reveals whether the email exists.
func ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email é obrigatório")
		return
	}

	ctx := r.Context()

	// One request per email per cooldown window.
	cooldownKey := "reset_cooldown:" + req.Email
	set, err := database.RedisClient.SetNX(ctx, cooldownKey, "1", resetCooldown).Result()
	if err == nil && !set {
		writeJSON(w, http.StatusOK, map[string]string{"mensagem": resetNeutralMessage})
		return
	}

	var userID string
	err = database.PostgresDB.QueryRowContext(ctx,
		"SELECT id FROM usuarios WHERE email = $1", req.Email).Scan(&userID)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusOK, map[string]string{"mensagem": resetNeutralMessage})
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	token, err := utils.GenerateToken(32)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Falha ao gerar token")
		return
	}

	_, err = database.PostgresDB.ExecContext(ctx, `
		INSERT INTO password_reset_tokens (token, usuario_id, expires_at)
		VALUES ($1, $2, $3)
	`, token, userID, time.Now().Add(resetTokenDuration))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	log.Printf("✅ Password reset token issued for user %s", userID)

	resp := map[string]string{"mensagem": resetNeutralMessage}
	// No outbound email transport is wired; outside production the
	// token is returned directly so the flow stays testable.
	if !cfg.IsProduction() {
		resp["token"] = token
	}
	writeJSON(w, http.StatusOK, resp)
}

// ResetPassword handles POST /api/reset-password.
func ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token     string `json:"token"`
		NovaSenha string `json:"novaSenha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if req.Token == "" || req.NovaSenha == "" {
		writeError(w, http.StatusBadRequest, "Token e nova senha são obrigatórios")
		return
	}
	if len(req.NovaSenha) < 6 {
		writeError(w, http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres")
		return
	}

	ctx := r.Context()
	userID, err := consumeResetToken(ctx, req.Token)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Token inválido ou expirado")
		return
	}

	hashed, err := utils.HashPassword(req.NovaSenha)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Falha ao processar senha")
		return
	}

	if _, err := database.PostgresDB.ExecContext(ctx,
		"UPDATE usuarios SET senha_hash = $1 WHERE id = $2", hashed, userID); err != nil {
		writeError(w, http.StatusInternalServerError, "Erro no banco de dados")
		return
	}

	// Old sessions die with the old password.
	if uid, err := uuid.Parse(userID); err == nil {
		services.InvalidateUserSessions(uid)
	}

	writeJSON(w, http.StatusOK, map[string]string{"mensagem": "Senha redefinida com sucesso"})
}

// consumeResetToken marks the token used and returns its owner. The
// UPDATE doubles as the validity check so a token can only be spent
// once even under concurrent requests.
func consumeResetToken(ctx context.Context, token string) (string, error) {
	var userID string
	err := database.PostgresDB.QueryRowContext(ctx, `
		UPDATE password_reset_tokens
		SET used = TRUE
		WHERE token = $1 AND used = FALSE AND expires_at > NOW()
		RETURNING usuario_id
	`, token).Scan(&userID)
	if err != nil {
		return "", err
	}
	return userID, nil
}
