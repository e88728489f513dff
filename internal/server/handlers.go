package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/complianceos/complianceos/internal/common"
	"github.com/complianceos/complianceos/internal/logging"
	"github.com/complianceos/complianceos/internal/models"
	"github.com/complianceos/complianceos/internal/store"
)

// Handlers bundles the HTTP handlers around the shared store.
type Handlers struct {
	store  *store.Store
	logger logging.Logger
}

func NewHandlers(s *store.Store, logger logging.Logger) *Handlers {
	return &Handlers{store: s, logger: logger}
}

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handlers) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Dashboard())
}

// ExportSnapshot returns the full store state as one JSON document.
func (h *Handlers) ExportSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// ImportSnapshot atomically replaces the full store state. Existing ids and
// timestamps are taken as-is; this is restore, not creation.
func (h *Handlers) ImportSnapshot(c *gin.Context) {
	var snap models.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.store.ReplaceState(snap)
	h.logger.Info(c.Request.Context(), "snapshot imported",
		"customers", len(snap.Customers),
		"questionnaires", len(snap.Questionnaires),
		"answers", len(snap.Answers),
		"tasks", len(snap.Tasks),
		"obligations", len(snap.Obligations),
		"agreements", len(snap.Agreements),
	)
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// addError maps store mutation errors to HTTP responses.
func addError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrorEmptyAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ---- customers ----

func (h *Handlers) ListCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot().Customers)
}

func (h *Handlers) CreateCustomer(c *gin.Context) {
	var m models.Customer
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.AddCustomer(m)
	if err != nil {
		addError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) GetCustomer(c *gin.Context) {
	m, ok := h.store.GetCustomer(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handlers) UpdateCustomer(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetCustomer(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	var m models.Customer
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m.ID = id
	h.store.UpdateCustomer(m)
	updated, _ := h.store.GetCustomer(id)
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetCustomer(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
		return
	}
	h.store.DeleteCustomer(id)
	c.Status(http.StatusNoContent)
}

// ---- questionnaires ----

func (h *Handlers) ListQuestionnaires(c *gin.Context) {
	if customerID := c.Query("customer_id"); customerID != "" {
		c.JSON(http.StatusOK, h.store.CustomerQuestionnaires(customerID))
		return
	}
	c.JSON(http.StatusOK, h.store.Snapshot().Questionnaires)
}

func (h *Handlers) CreateQuestionnaire(c *gin.Context) {
	var m models.Questionnaire
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.AddQuestionnaire(m)
	if err != nil {
		addError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) GetQuestionnaire(c *gin.Context) {
	m, ok := h.store.GetQuestionnaire(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handlers) UpdateQuestionnaire(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetQuestionnaire(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
		return
	}
	var m models.Questionnaire
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m.ID = id
	h.store.UpdateQuestionnaire(m)
	updated, _ := h.store.GetQuestionnaire(id)
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) DeleteQuestionnaire(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetQuestionnaire(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
		return
	}
	h.store.DeleteQuestionnaire(id)
	c.Status(http.StatusNoContent)
}

func (h *Handlers) QuestionnaireProgress(c *gin.Context) {
	m, ok := h.store.GetQuestionnaire(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
		return
	}
	c.JSON(http.StatusOK, m.Progress())
}

func (h *Handlers) UpdateQuestion(c *gin.Context) {
	id := c.Param("id")
	questionID := c.Param("questionID")

	qn, ok := h.store.GetQuestionnaire(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "questionnaire not found"})
		return
	}
	found := false
	for _, q := range qn.Questions {
		if q.ID == questionID {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}

	var q models.Question
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q.ID = questionID
	h.store.UpdateQuestion(id, q)
	updated, _ := h.store.GetQuestionnaire(id)
	for _, question := range updated.Questions {
		if question.ID == questionID {
			c.JSON(http.StatusOK, question)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
}

func (h *Handlers) FinalizeQuestion(c *gin.Context) {
	answer, err := h.store.FinalizeQuestion(c.Request.Context(), c.Param("id"), c.Param("questionID"))
	if err != nil {
		addError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

// ---- answers ----

func (h *Handlers) ListAnswers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot().Answers)
}

func (h *Handlers) CreateAnswer(c *gin.Context) {
	var m models.Answer
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.AddAnswer(m)
	if err != nil {
		addError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) GetAnswer(c *gin.Context) {
	m, ok := h.store.GetAnswer(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "answer not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handlers) UpdateAnswer(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetAnswer(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "answer not found"})
		return
	}
	var m models.Answer
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m.ID = id
	h.store.UpdateAnswer(m)
	updated, _ := h.store.GetAnswer(id)
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) DeleteAnswer(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetAnswer(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "answer not found"})
		return
	}
	h.store.DeleteAnswer(id)
	c.Status(http.StatusNoContent)
}

func (h *Handlers) SearchAnswers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.SearchAnswers(c.Query("q")))
}

func (h *Handlers) SuggestAnswers(c *gin.Context) {
	question := c.Query("question")
	if question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question query parameter is required"})
		return
	}
	c.JSON(http.StatusOK, h.store.SuggestedAnswers(question))
}

// ---- tasks ----

func (h *Handlers) ListTasks(c *gin.Context) {
	if customerID := c.Query("customer_id"); customerID != "" {
		c.JSON(http.StatusOK, h.store.CustomerTasks(customerID))
		return
	}
	c.JSON(http.StatusOK, h.store.Snapshot().Tasks)
}

func (h *Handlers) CreateTask(c *gin.Context) {
	var m models.Task
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.AddTask(m)
	if err != nil {
		addError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) GetTask(c *gin.Context) {
	m, ok := h.store.GetTask(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handlers) UpdateTask(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetTask(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	var m models.Task
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m.ID = id
	h.store.UpdateTask(m)
	updated, _ := h.store.GetTask(id)
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) DeleteTask(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetTask(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	h.store.DeleteTask(id)
	c.Status(http.StatusNoContent)
}

func (h *Handlers) AddEvidence(c *gin.Context) {
	var ev models.Evidence
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.AddEvidence(c.Param("id"), ev)
	if err != nil {
		addError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ---- obligations ----

func (h *Handlers) ListObligations(c *gin.Context) {
	if customerID := c.Query("customer_id"); customerID != "" {
		c.JSON(http.StatusOK, h.store.CustomerObligations(customerID))
		return
	}
	c.JSON(http.StatusOK, h.store.Snapshot().Obligations)
}

func (h *Handlers) CreateObligation(c *gin.Context) {
	var m models.Obligation
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.AddObligation(m)
	if err != nil {
		addError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) GetObligation(c *gin.Context) {
	m, ok := h.store.GetObligation(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "obligation not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handlers) UpdateObligation(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetObligation(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "obligation not found"})
		return
	}
	var m models.Obligation
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m.ID = id
	h.store.UpdateObligation(m)
	updated, _ := h.store.GetObligation(id)
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) DeleteObligation(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetObligation(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "obligation not found"})
		return
	}
	h.store.DeleteObligation(id)
	c.Status(http.StatusNoContent)
}

// UpcomingObligations lists incomplete obligations due within ?days= from
// now (default 60), soonest first.
func (h *Handlers) UpcomingObligations(c *gin.Context) {
	days := 60
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = parsed
	}
	c.JSON(http.StatusOK, h.store.UpcomingObligations(days))
}

func (h *Handlers) ObligationTimeline(c *gin.Context) {
	entries, stats := h.store.Timeline()
	c.JSON(http.StatusOK, gin.H{"entries": entries, "stats": stats})
}

// ---- agreements ----

func (h *Handlers) ListAgreements(c *gin.Context) {
	if customerID := c.Query("customer_id"); customerID != "" {
		c.JSON(http.StatusOK, h.store.CustomerAgreements(customerID))
		return
	}
	c.JSON(http.StatusOK, h.store.Snapshot().Agreements)
}

func (h *Handlers) CreateAgreement(c *gin.Context) {
	var m models.Agreement
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.AddAgreement(m)
	if err != nil {
		addError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *Handlers) GetAgreement(c *gin.Context) {
	m, ok := h.store.GetAgreement(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "agreement not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *Handlers) UpdateAgreement(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetAgreement(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "agreement not found"})
		return
	}
	var m models.Agreement
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m.ID = id
	h.store.UpdateAgreement(m)
	updated, _ := h.store.GetAgreement(id)
	c.JSON(http.StatusOK, updated)
}

func (h *Handlers) DeleteAgreement(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.GetAgreement(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "agreement not found"})
		return
	}
	h.store.DeleteAgreement(id)
	c.Status(http.StatusNoContent)
}
