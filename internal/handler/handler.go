package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"registration/internal/export"
	"registration/internal/identity"
	"registration/internal/photo"
	"registration/internal/registration"
)

// Handler wires the registration and identity services to gin routes.
type Handler struct {
	registrations *registration.Service
	identities    *identity.Service
}

// New creates a handler.
func New(registrations *registration.Service, identities *identity.Service) *Handler {
	return &Handler{registrations: registrations, identities: identities}
}

// ---------- Public form ----------

// Submit handles the anonymous registration form. Expects a multipart
// form with the six fields plus a photo file.
func (h *Handler) Submit(c *gin.Context) {
	var sub registration.Submission
	if err := c.ShouldBind(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ph, err := readPhoto(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.registrations.Submit(c.Request.Context(), sub, ph)
	if err != nil {
		h.renderSubmitError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"registration": rec})
}

func readPhoto(c *gin.Context) (photo.File, error) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		return photo.File{}, photo.ErrMissing
	}
	defer file.Close()
	// Reject on the declared type and size before buffering the file,
	// so a huge upload never gets read into memory.
	if err := photo.CheckHeader(header.Header.Get("Content-Type"), header.Size); err != nil {
		return photo.File{}, err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return photo.File{}, errors.New("failed to read photo")
	}
	return photo.File{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, nil
}

func (h *Handler) renderSubmitError(c *gin.Context, err error) {
	var verr registration.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr})
	case errors.Is(err, photo.ErrBadType), errors.Is(err, photo.ErrTooLarge), errors.Is(err, photo.ErrMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, registration.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
	default:
		log.Printf("registration workflow failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "registration failed, please try again"})
	}
}

// ---------- Admin auth ----------

// Signup creates an admin account with its role grant.
func (h *Handler) Signup(c *gin.Context) {
	var creds registration.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.identities.Signup(c.Request.Context(), creds)
	if err != nil {
		var verr registration.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": verr})
			return
		}
		log.Printf("signup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
}

// Login exchanges credentials for a token pair.
func (h *Handler) Login(c *gin.Context) {
	var creds registration.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pair, err := h.identities.Login(c.Request.Context(), creds)
	if err != nil {
		var verr registration.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"errors": verr})
		case errors.Is(err, identity.ErrBadCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			log.Printf("login failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_at":    pair.AccessExp.Unix(),
	})
}

// Logout revokes the current session.
func (h *Handler) Logout(c *gin.Context) {
	token := c.GetString("token")
	if err := h.identities.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// Refresh rotates a refresh token.
func (h *Handler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pair, err := h.identities.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_at":    pair.AccessExp.Unix(),
	})
}

// ---------- Admin dashboard ----------

// List returns one page of the filtered record set. The full set is
// fetched in creation order and filtered in memory, matching the
// dashboard's search-plus-department view.
func (h *Handler) List(c *gin.Context) {
	records, err := h.registrations.List(c.Request.Context())
	if err != nil {
		log.Printf("list registrations failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registrations"})
		return
	}

	filtered := registration.Filter(records, c.Query("search"), c.DefaultQuery("department", registration.AllDepartments))

	page := 1
	if v := c.Query("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			page = parsed
		}
	}
	items, page, pages := registration.Paginate(filtered, page)

	c.JSON(http.StatusOK, gin.H{
		"registrations": items,
		"page":          page,
		"total_pages":   pages,
		"total":         len(filtered),
	})
}

// Stats reports the dashboard tiles over the full set.
func (h *Handler) Stats(c *gin.Context) {
	records, err := h.registrations.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registrations"})
		return
	}
	c.JSON(http.StatusOK, registration.ComputeStats(records, time.Now()))
}

// Get returns one record by id.
func (h *Handler) Get(c *gin.Context) {
	rec, err := h.registrations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, registration.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration": rec})
}

// Update patches the six editable fields of a record.
func (h *Handler) Update(c *gin.Context) {
	var sub registration.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.registrations.Update(c.Request.Context(), c.Param("id"), sub)
	if err != nil {
		var verr registration.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"errors": verr})
		case errors.Is(err, registration.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
		default:
			log.Printf("update registration failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"registration": rec})
}

// Delete removes a record and its photo object.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.registrations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, registration.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "registration not found"})
			return
		}
		log.Printf("delete registration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Export streams the full record set as a spreadsheet download.
func (h *Handler) Export(c *gin.Context) {
	records, err := h.registrations.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch registrations"})
		return
	}
	workbook, err := export.Workbook(records)
	if err != nil {
		log.Printf("export build failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	buf, err := workbook.WriteToBuffer()
	if err != nil {
		log.Printf("export write failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
