package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sandeepkv93/lembrete/internal/datemask"
	"github.com/sandeepkv93/lembrete/internal/model"
	"github.com/sandeepkv93/lembrete/internal/reminders"
)

// reminderForm holds the raw form values so a rejected submit can be redisplayed.
type reminderForm struct {
	Title       string
	Action      string
	Text        string
	DueDate     string
	Priority    int
	CategoryID  int64
	Description string
	Error       string
}

func (f reminderForm) input() reminders.Input {
	in := reminders.Input{
		Text:        f.Text,
		DueDate:     f.DueDate,
		Priority:    f.Priority,
		Description: f.Description,
	}
	if f.CategoryID > 0 {
		id := f.CategoryID
		in.CategoryID = &id
	}
	return in
}

func formFromRequest(c *gin.Context) reminderForm {
	f := reminderForm{
		Text:        c.PostForm("text"),
		DueDate:     strings.TrimSpace(c.PostForm("due_date")),
		Description: c.PostForm("description"),
	}
	// Unparseable numbers fall through to validation as out-of-range values.
	if p, err := strconv.Atoi(c.DefaultPostForm("priority", "0")); err == nil {
		f.Priority = p
	} else {
		f.Priority = -1
	}
	if id, err := strconv.ParseInt(c.PostForm("category_id"), 10, 64); err == nil {
		f.CategoryID = id
	}
	return f
}

func formFromReminder(rem model.Reminder) reminderForm {
	f := reminderForm{
		Text:        rem.Text,
		DueDate:     datemask.Format(rem.DueDate),
		Priority:    int(rem.Priority),
		Description: rem.Description,
	}
	if rem.CategoryID != nil {
		f.CategoryID = *rem.CategoryID
	}
	return f
}

func (s *Server) handleIndex(c *gin.Context) {
	ctx := c.Request.Context()
	filter, err := filterFromQuery(c)
	if err != nil {
		s.pageError(c, err)
		return
	}
	list, err := s.svc.List(ctx, filter)
	if err != nil {
		s.pageError(c, err)
		return
	}
	cats, err := s.svc.ListCategories(ctx)
	if err != nil {
		s.pageError(c, err)
		return
	}
	var selected int64
	if filter.CategoryID != nil {
		selected = *filter.CategoryID
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":      "Lembretes",
		"reminders":  list,
		"categories": cats,
		"names":      categoryNames(cats),
		"status":     string(filter.Status),
		"selected":   selected,
		"now":        s.now(),
	})
}

func (s *Server) handleNewForm(c *gin.Context) {
	s.renderForm(c, http.StatusOK, reminderForm{Title: "Novo lembrete", Action: "/lembretes"})
}

func (s *Server) handleCreate(c *gin.Context) {
	form := formFromRequest(c)
	form.Title, form.Action = "Novo lembrete", "/lembretes"
	if _, err := s.svc.Create(c.Request.Context(), form.input()); err != nil {
		s.formError(c, form, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleEditForm(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.pageError(c, err)
		return
	}
	rem, err := s.svc.Get(c.Request.Context(), id)
	if err != nil {
		s.pageError(c, err)
		return
	}
	form := formFromReminder(rem)
	form.Title, form.Action = "Editar lembrete", "/lembretes/"+strconv.FormatInt(id, 10)
	s.renderForm(c, http.StatusOK, form)
}

func (s *Server) handleUpdate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.pageError(c, err)
		return
	}
	form := formFromRequest(c)
	form.Title, form.Action = "Editar lembrete", "/lembretes/"+strconv.FormatInt(id, 10)
	if _, err := s.svc.Update(c.Request.Context(), id, form.input()); err != nil {
		s.formError(c, form, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleToggle(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.pageError(c, err)
		return
	}
	if _, err := s.svc.Toggle(c.Request.Context(), id); err != nil {
		s.pageError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleDelete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.pageError(c, err)
		return
	}
	if err := s.svc.Delete(c.Request.Context(), id); err != nil {
		s.pageError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleCategories(c *gin.Context) {
	s.renderCategories(c, http.StatusOK, reminders.CategoryInput{}, "")
}

func (s *Server) handleCreateCategory(c *gin.Context) {
	in := reminders.CategoryInput{Name: c.PostForm("name"), Color: c.PostForm("color")}
	if _, err := s.svc.CreateCategory(c.Request.Context(), in); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.pageError(c, err)
			return
		}
		msg := err.Error()
		if status == http.StatusConflict {
			msg = "Já existe uma categoria com esse nome."
		}
		s.renderCategories(c, status, in, msg)
		return
	}
	c.Redirect(http.StatusSeeOther, "/categorias")
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.pageError(c, err)
		return
	}
	if err := s.svc.DeleteCategory(c.Request.Context(), id); err != nil {
		s.pageError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/categorias")
}

func (s *Server) renderForm(c *gin.Context, status int, form reminderForm) {
	cats, err := s.svc.ListCategories(c.Request.Context())
	if err != nil {
		s.pageError(c, err)
		return
	}
	c.HTML(status, "form.html", gin.H{
		"title":      form.Title,
		"form":       form,
		"categories": cats,
	})
}

func (s *Server) renderCategories(c *gin.Context, status int, in reminders.CategoryInput, msg string) {
	cats, err := s.svc.ListCategories(c.Request.Context())
	if err != nil {
		s.pageError(c, err)
		return
	}
	c.HTML(status, "categories.html", gin.H{
		"title":      "Categorias",
		"categories": cats,
		"input":      in,
		"error":      msg,
	})
}

func (s *Server) formError(c *gin.Context, form reminderForm, err error) {
	var verr *reminders.ValidationError
	if !errors.As(err, &verr) {
		s.pageError(c, err)
		return
	}
	form.Error = fieldMessage(verr)
	s.renderForm(c, http.StatusBadRequest, form)
}

func (s *Server) pageError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("page request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.HTML(status, "error.html", gin.H{
		"title":  "Erro",
		"status": status,
		"error":  publicMessage(status, err),
	})
}

func fieldMessage(verr *reminders.ValidationError) string {
	switch {
	case errors.Is(verr, model.ErrTextRequired):
		return "Informe o texto do lembrete."
	case errors.Is(verr, model.ErrTextTooLong):
		return "O texto pode ter no máximo " + strconv.Itoa(model.MaxTextLength) + " caracteres."
	case errors.Is(verr, datemask.ErrInvalidDate):
		return "Informe uma data válida no formato DD/MM/AAAA."
	case errors.Is(verr, model.ErrInvalidPriority):
		return "Prioridade inválida."
	case verr.Field == "category_id":
		return "Categoria inexistente."
	default:
		return strings.TrimSpace(verr.Error())
	}
}

func categoryNames(cats []model.Category) map[int64]string {
	names := make(map[int64]string, len(cats))
	for _, cat := range cats {
		names[cat.ID] = cat.Name
	}
	return names
}
