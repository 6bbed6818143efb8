// Package web: API routes for the moderation dashboard.
package web

import (
	"context"
	"crypto/subtle"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/gorilla/sessions"

	"github.com/voidswithin/cipher/pkg/config"
	"github.com/voidswithin/cipher/pkg/database"
	"github.com/voidswithin/cipher/pkg/discord"
	cerrors "github.com/voidswithin/cipher/pkg/errors"
)

const sessionName = "cipher_session"

var store *sessions.CookieStore

// SetupAPIRoutes sets up all dashboard routes on the server
func SetupAPIRoutes(s *Server) {
	cfg := config.Get()

	store = sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
	}

	s.POST("/auth/login", loginHandler)
	s.POST("/auth/logout", logoutHandler)

	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
	}

	// Moderator-only surface
	authed := s.Group("/api", requireSession())
	{
		authed.GET("/templates", listTemplatesHandler)
		authed.POST("/templates", createTemplateHandler)
		authed.GET("/users/:id/warnings", userWarningsHandler)

		// Community-site features served elsewhere for now
		authed.GET("/challenges", placeholderListHandler)
		authed.POST("/challenges", placeholderWriteHandler)
		authed.GET("/faqs", placeholderListHandler)
		authed.POST("/faqs", placeholderWriteHandler)
	}

	s.GET("/dashboard", requireSession(), dashboardHandler)
}

// requireSession rejects requests without an authenticated session
func requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Request, sessionName)
		if err != nil || session.Values["authenticated"] != true {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "A moderator session is required.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// loginHandler opens a moderator session
func loginHandler(c *gin.Context) {
	var body struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "A password is required."})
		return
	}

	cfg := config.Get()
	if cfg.DashboardPassword == "" ||
		subtle.ConstantTimeCompare([]byte(body.Password), []byte(cfg.DashboardPassword)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "message": "Invalid credentials."})
		return
	}

	session, _ := store.Get(c.Request, sessionName)
	session.Values["authenticated"] = true
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// logoutHandler closes the moderator session
func logoutHandler(c *gin.Context) {
	session, _ := store.Get(c.Request, sessionName)
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1
	_ = session.Save(c.Request, c.Writer)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Cipher is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "The bot is not available right now.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// dashboardHandler returns a summary for the dashboard landing view
func dashboardHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	templates, err := database.NewTemplateService(database.Get()).ListTemplates(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": len(templates),
		"uptime":    uptimeSeconds(),
	})
}

func uptimeSeconds() int64 {
	client := discord.Get()
	if client == nil || client.StartTime.IsZero() {
		return 0
	}
	return int64(time.Since(client.StartTime).Seconds())
}

// listTemplatesHandler returns the warning template catalog
func listTemplatesHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	templates, err := database.NewTemplateService(database.Get()).ListTemplates(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

// createTemplateHandler adds a warning template from the dashboard
func createTemplateHandler(c *gin.Context) {
	var body struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		CreatedBy   string `json:"createdBy" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	id, err := database.NewTemplateService(database.Get()).CreateTemplate(ctx, body.Title, body.Description, body.CreatedBy)
	if err != nil {
		if cerrors.IsValidation(err) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation Failed", "message": err.Error()})
			return
		}
		if isForeignKeyViolation(err) {
			// The dashboard sends creator ids the bot has never seen;
			// an unknown one is a caller problem, not a server fault
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "Validation Failed",
				"message": "createdBy does not match a known user.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": strconv.FormatInt(id, 10)})
}

// isForeignKeyViolation reports whether err wraps MySQL error 1452, a
// failed foreign key check on insert
func isForeignKeyViolation(err error) bool {
	var mysqlErr *mysql.MySQLError
	return stderrors.As(err, &mysqlErr) && mysqlErr.Number == 1452
}

// userWarningsHandler returns a member's warning history
func userWarningsHandler(c *gin.Context) {
	userID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	warnings, err := database.NewWarningService(database.Get()).ListWarningsForUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userId": userID, "warnings": warnings})
}

func placeholderListHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": []interface{}{}})
}

func placeholderWriteHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{
		"error":   "Not Implemented",
		"message": "This resource is managed by the community site.",
	})
}
