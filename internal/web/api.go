package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/lembrete/internal/reminders"
)

const maxQueryRunes = 500

type completeRequest struct {
	Completed *bool `json:"completed"`
}

func (s *Server) handleAPIList(c *gin.Context) {
	filter, err := filterFromQuery(c)
	if err != nil {
		s.apiError(c, err)
		return
	}
	list, err := s.svc.List(c.Request.Context(), filter)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

func (s *Server) handleAPIUpcoming(c *gin.Context) {
	list, err := s.svc.Upcoming(c.Request.Context())
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

func (s *Server) handleAPIGet(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.apiError(c, err)
		return
	}
	rem, err := s.svc.Get(c.Request.Context(), id)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rem})
}

func (s *Server) handleAPICreate(c *gin.Context) {
	var in reminders.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	rem, err := s.svc.Create(c.Request.Context(), in)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": rem})
}

func (s *Server) handleAPIUpdate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.apiError(c, err)
		return
	}
	var in reminders.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	rem, err := s.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rem})
}

func (s *Server) handleAPIComplete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.apiError(c, err)
		return
	}
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "completed is required"})
		return
	}
	rem, err := s.svc.SetCompleted(c.Request.Context(), id, *req.Completed)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rem})
}

func (s *Server) handleAPIDelete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.apiError(c, err)
		return
	}
	if err := s.svc.Delete(c.Request.Context(), id); err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAPIListCategories(c *gin.Context) {
	cats, err := s.svc.ListCategories(c.Request.Context())
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cats})
}

func (s *Server) handleAPICreateCategory(c *gin.Context) {
	var in reminders.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	cat, err := s.svc.CreateCategory(c.Request.Context(), in)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": cat})
}

func (s *Server) handleAPIUpdateCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.apiError(c, err)
		return
	}
	var in reminders.CategoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	cat, err := s.svc.UpdateCategory(c.Request.Context(), id, in)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cat})
}

func (s *Server) handleAPIDeleteCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.apiError(c, err)
		return
	}
	if err := s.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleAPISuggest(c *gin.Context) {
	q := c.Query("q")
	if len([]rune(q)) > maxQueryRunes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "query too long"})
		return
	}
	list, err := s.svc.Suggest(c.Request.Context(), q)
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

func (s *Server) handleAPIDate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": s.svc.MaskDate(c.Query("valor"))})
}

func filterFromQuery(c *gin.Context) (reminders.Filter, error) {
	status, ok := reminders.ParseStatus(c.Query("status"))
	if !ok {
		return reminders.Filter{}, &reminders.ValidationError{Field: "status", Err: errUnknownStatus}
	}
	catID, err := parseOptionalID(c.Query("categoria"))
	if err != nil {
		return reminders.Filter{}, &reminders.ValidationError{Field: "categoria", Err: err}
	}
	return reminders.Filter{Status: status, CategoryID: catID}, nil
}
