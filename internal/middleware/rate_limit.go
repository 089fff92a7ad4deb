package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email, via des
// compteurs Redis. Les handlers appellent RecordLoginFailure /
// ResetLoginAttempts selon l'issue.
func LoginRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		cooldownKey := "login_cooldown:" + input.Email
		if rdb.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := rdb.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RecordLoginFailure incrémente le compteur d'échecs et déclenche le
// cooldown au-delà du seuil.
func RecordLoginFailure(ctx context.Context, rdb *redis.Client, email string) {
	if rdb == nil {
		return
	}
	key := "login_attempts:" + email
	attempts := rdb.Incr(ctx, key).Val()
	rdb.Expire(ctx, key, LoginCooldown)

	if attempts >= LoginMaxAttempts {
		rdb.Set(ctx, "login_cooldown:"+email, "1", LoginCooldown)
		rdb.Del(ctx, key)
	}
}

// ResetLoginAttempts remet le compteur à zéro après une connexion réussie.
func ResetLoginAttempts(ctx context.Context, rdb *redis.Client, email string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, "login_attempts:"+email)
}
