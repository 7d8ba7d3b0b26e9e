package middleware

import (
	"strings"

	"luxestay/response"
	"luxestay/services"
	"luxestay/types"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// AuthMiddleware xử lý authentication, roles rỗng thì chỉ cần đăng nhập
func AuthMiddleware(tokens *services.TokenManager, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "No token, authorization denied")
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		actor, err := tokens.ParseToken(tokenString)
		if err != nil {
			response.Unauthorized(c, "Token is not valid")
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 && !hasRole(actor.Role, roles) {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		// Lưu thông tin user vào context
		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalAuth gắn actor nếu token hợp lệ, không có token vẫn cho qua
func OptionalAuth(tokens *services.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		if tokenString != "" {
			if actor, err := tokens.ParseToken(tokenString); err == nil {
				c.Set(actorKey, actor)
			}
		}
		c.Next()
	}
}

func hasRole(role string, roles []string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// GetActor lấy actor đã xác thực từ context
func GetActor(c *gin.Context) types.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(types.Actor); ok {
			return actor
		}
	}
	return types.Actor{}
}

// ErrorHandler bắt lỗi còn sót trong c.Errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}
