package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/K9173A/todoapp/forms"
	"github.com/K9173A/todoapp/models"
	"github.com/K9173A/todoapp/pagination"
	"github.com/K9173A/todoapp/repository"
	"github.com/K9173A/todoapp/templates"
	"github.com/K9173A/todoapp/utils"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// statusKey is the list filter parameter. It is not "status" so it cannot
// collide with the form field of the same name.
const statusKey = "filter"

// Options configures a TaskHandler.
type Options struct {
	ItemsPerPage int
	PageRange    int
	Now          func() time.Time
}

// TaskHandler serves the task pages and the JSON fragments the page script
// requests.
type TaskHandler struct {
	repo      repository.TaskRepository
	views     *template.Template
	tokens    *utils.CSRF
	perPage   int
	pageRange int
	now       func() time.Time
}

func NewTaskHandler(repo repository.TaskRepository, views *template.Template, tokens *utils.CSRF, opts Options) *TaskHandler {
	h := &TaskHandler{
		repo:      repo,
		views:     views,
		tokens:    tokens,
		perPage:   opts.ItemsPerPage,
		pageRange: opts.PageRange,
		now:       opts.Now,
	}
	if h.perPage < 1 {
		h.perPage = pagination.DefaultItemsPerPage
	}
	if h.pageRange < 1 {
		h.pageRange = pagination.DefaultRange
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

type option struct {
	Label  string
	URL    string
	Active bool
}

type paginationView struct {
	Links      pagination.Links
	TotalPages int
	TotalItems int
}

type listView struct {
	Tasks         []models.TaskView
	Pagination    paginationView
	Query         string
	SortOptions   []option
	StatusOptions []option
	StatusFilter  models.Status
	AllStatusURL  string
}

type formView struct {
	Form      *forms.TaskForm
	CSRFToken string
	Action    string
}

// listState derives the page, sort and filter of the current request.
func (h *TaskHandler) listState(c *gin.Context, page string) (*pagination.Paginator, repository.Filter, error) {
	p, err := pagination.FromQuery(page, c.Request.URL.Query(), h.perPage, statusKey)
	if err != nil {
		return nil, repository.Filter{}, err
	}

	var filter repository.Filter
	if raw := c.Query(statusKey); raw != "" {
		n, err := strconv.Atoi(raw)
		if status := models.Status(n); err == nil && status.Valid() {
			filter.Status = status
		} else {
			p.Preserve(statusKey, "")
		}
	}

	return p, filter, nil
}

// loadList counts and fetches the current page. clamp moves the page back
// onto the last one when the list has shrunk underneath it.
func (h *TaskHandler) loadList(ctx context.Context, p *pagination.Paginator, filter repository.Filter, clamp bool) (listView, error) {
	total, err := h.repo.Count(ctx, filter)
	if err != nil {
		return listView{}, err
	}
	p.SetTotalItems(total)
	if clamp {
		p.ClampToLastPage()
	}

	tasks, err := h.repo.List(ctx, filter, p.Sort(), p.Offset(), p.ItemsPerPage())
	if err != nil {
		return listView{}, err
	}

	view := listView{
		Tasks: models.PresentAll(tasks, h.now()),
		Pagination: paginationView{
			Links:      p.Links(h.pageRange),
			TotalPages: p.TotalPages(),
			TotalItems: p.TotalItems(),
		},
		Query:        p.QueryString(),
		StatusFilter: filter.Status,
		AllStatusURL: p.FilterURL(statusKey, ""),
	}

	for _, s := range pagination.Sorts() {
		view.SortOptions = append(view.SortOptions, option{
			Label:  s.Label,
			URL:    p.SortURL(s.Key),
			Active: s.Key == p.Sort().Key,
		})
	}
	for _, choice := range models.StatusChoices {
		view.StatusOptions = append(view.StatusOptions, option{
			Label:  choice.Label,
			URL:    p.FilterURL(statusKey, strconv.Itoa(choice.Value)),
			Active: int(filter.Status) == choice.Value,
		})
	}

	return view, nil
}

// Root redirects to the first page, keeping the query string.
func (h *TaskHandler) Root(c *gin.Context) {
	target := "/p/1"
	if raw := c.Request.URL.RawQuery; raw != "" {
		target += "?" + raw
	}
	c.Redirect(http.StatusFound, target)
}

// Index renders the full page for /p/:page.
func (h *TaskHandler) Index(c *gin.Context) {
	p, filter, err := h.listState(c, c.Param("page"))
	if err != nil {
		h.failPage(c, err)
		return
	}

	view, err := h.loadList(c.Request.Context(), p, filter, false)
	if err != nil {
		h.failPage(c, err)
		return
	}

	c.HTML(http.StatusOK, templates.Index, view)
}

// CreateForm returns a blank creation form.
func (h *TaskHandler) CreateForm(c *gin.Context) {
	h.respondForm(c, templates.CreateForm, forms.New(), "/create_task", nil)
}

// CreateTask validates the submitted form and stores a new task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	form := forms.New()
	if !form.Bind(c, h.tokens) {
		h.respondForm(c, templates.CreateForm, form, "/create_task", boolPtr(false))
		return
	}

	id, err := h.repo.Create(c.Request.Context(), form.Fields())
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		form.Merge(verr)
		h.respondForm(c, templates.CreateForm, form, "/create_task", boolPtr(false))
		return
	}
	if err != nil {
		h.failFragment(c, err)
		return
	}

	log.Info().Str("task_id", id).Msg("task created")

	h.respondList(c, boolPtr(true))
}

// UpdateForm returns the edit form prepopulated with the task.
func (h *TaskHandler) UpdateForm(c *gin.Context) {
	id := c.Query("task")

	task, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.failFragment(c, err)
		return
	}

	h.respondForm(c, templates.UpdateForm, forms.FromTask(task), updateAction(id), nil)
}

// UpdateTask validates the submitted form and replaces the task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id := c.Query("task")

	if _, err := h.repo.Get(c.Request.Context(), id); err != nil {
		h.failFragment(c, err)
		return
	}

	form := forms.New()
	if !form.Bind(c, h.tokens) {
		h.respondForm(c, templates.UpdateForm, form, updateAction(id), boolPtr(false))
		return
	}

	err := h.repo.Replace(c.Request.Context(), id, form.Fields())
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		form.Merge(verr)
		h.respondForm(c, templates.UpdateForm, form, updateAction(id), boolPtr(false))
		return
	}
	if err != nil {
		h.failFragment(c, err)
		return
	}

	log.Info().Str("task_id", id).Msg("task updated")

	h.respondList(c, boolPtr(true))
}

// RemoveTask deletes the task and returns the refreshed list.
func (h *TaskHandler) RemoveTask(c *gin.Context) {
	id := c.Query("task")

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.failFragment(c, err)
		return
	}

	log.Info().Str("task_id", id).Msg("task removed")

	h.respondList(c, nil)
}

func (h *TaskHandler) respondForm(c *gin.Context, name string, form *forms.TaskForm, action string, valid *bool) {
	token, err := h.tokens.Generate()
	if err != nil {
		h.failFragment(c, err)
		return
	}

	html, err := templates.Render(h.views, name, formView{Form: form, CSRFToken: token, Action: action})
	if err != nil {
		h.failFragment(c, err)
		return
	}

	data := gin.H{"form_html": html}
	if valid != nil {
		data["form_is_valid"] = *valid
	}
	utils.ResponseWithJson(c, http.StatusOK, data)
}

func (h *TaskHandler) respondList(c *gin.Context, valid *bool) {
	p, filter, err := h.listState(c, "")
	if err != nil {
		h.failFragment(c, err)
		return
	}

	view, err := h.loadList(c.Request.Context(), p, filter, true)
	if err != nil {
		h.failFragment(c, err)
		return
	}

	tasksHTML, err := templates.Render(h.views, templates.TasksList, view)
	if err != nil {
		h.failFragment(c, err)
		return
	}
	paginationHTML, err := templates.Render(h.views, templates.Pagination, view)
	if err != nil {
		h.failFragment(c, err)
		return
	}

	data := gin.H{
		"tasks_html":      tasksHTML,
		"pagination_html": paginationHTML,
	}
	if valid != nil {
		data["form_is_valid"] = *valid
	}
	utils.ResponseWithJson(c, http.StatusOK, data)
}

func updateAction(id string) string {
	return "/update_task?" + url.Values{"task": {id}}.Encode()
}

func boolPtr(b bool) *bool {
	return &b
}
