package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"jokeboard/src/app/http/form"
	"jokeboard/src/app/http/response"
	"jokeboard/src/app/middleware"
	"jokeboard/src/core/domain"
	"jokeboard/src/core/usecase"
)

// JokeHandler handles joke endpoints.
type JokeHandler struct {
	jokeService *usecase.JokeService
}

func NewJokeHandler(jokeService *usecase.JokeService) *JokeHandler {
	return &JokeHandler{jokeService: jokeService}
}

// Create handles the joke submission form. Mounted behind RequireUser, so an
// unauthenticated request is rejected before the body is read.
// POST /v1/jokes
func (h *JokeHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	sub, err := form.ParseJoke(c.Request)
	if err != nil {
		response.FormError(c, form.ErrMalformed.Error(), nil)
		return
	}

	fieldErrors := map[string]string{}
	if msg := usecase.ValidateJokeName(sub.Name); msg != "" {
		fieldErrors["name"] = msg
	}
	if msg := usecase.ValidateJokeContent(sub.Content); msg != "" {
		fieldErrors["content"] = msg
	}
	if len(fieldErrors) > 0 {
		response.FieldErrors(c, fieldErrors, sub.Echo())
		return
	}

	joke, err := h.jokeService.Create(c.Request.Context(), userID, sub.Name, sub.Content)
	if err != nil {
		c.Error(err)
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	c.Redirect(http.StatusFound, "/jokes/"+joke.ID.String())
}

// List returns a page of jokes, newest first.
// GET /v1/jokes
func (h *JokeHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	jokes, total, err := h.jokeService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}

	out := make([]gin.H, 0, len(jokes))
	for _, j := range jokes {
		out = append(out, jokeJSON(&j))
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	c.JSON(http.StatusOK, response.Paginated{
		Data:       out,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	})
}

// Random returns one random joke.
// GET /v1/jokes/random
func (h *JokeHandler) Random(c *gin.Context) {
	joke, err := h.jokeService.Random(c.Request.Context())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"joke": jokeJSON(joke)})
}

// Get returns a joke by ID.
// GET /v1/jokes/:joke_id
func (h *JokeHandler) Get(c *gin.Context) {
	jokeID, ok := parseJokeID(c)
	if !ok {
		return
	}
	joke, err := h.jokeService.Get(c.Request.Context(), jokeID)
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, gin.H{"joke": jokeJSON(joke)})
}

// Delete removes a joke. Owner only; mounted behind RequireUser.
// DELETE /v1/jokes/:joke_id
func (h *JokeHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	jokeID, ok := parseJokeID(c)
	if !ok {
		return
	}

	if err := h.jokeService.Delete(c.Request.Context(), userID, jokeID); err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

func jokeJSON(j *domain.Joke) gin.H {
	return gin.H{
		"joke_id":    j.ID,
		"name":       j.Name,
		"content":    j.Content,
		"owner_id":   j.OwnerID,
		"created_at": j.CreatedAt,
	}
}

func parseJokeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("joke_id"))
	if err != nil {
		response.BadRequest(c, "invalid joke id", middleware.GetRequestID(c))
		return uuid.Nil, false
	}
	return id, true
}
