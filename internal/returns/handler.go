package returns

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// POST /devoluciones — run the return workflow
	r.POST("/devoluciones", h.CreateReturn)

	// GET /devoluciones/verificar/:prestamo_id — read-only status check
	// before registering a return
	r.GET("/devoluciones/verificar/:prestamo_id", h.CheckStatus)

	// GET /devoluciones (historial)
	r.GET("/devoluciones", h.ListReturns)
	// GET /devoluciones/:key (id or ulid)
	r.GET("/devoluciones/:key", h.GetReturn)
}

// ---------- handlers ----------

func (h *Handler) CreateReturn(c *gin.Context) {
	var req CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "invalid json or missing required fields"))
		return
	}

	res, err := h.svc.CreateReturn(c.Request.Context(), req)
	if err != nil {
		status := ToHTTPStatus(err)
		// Here the loan id is request payload, not a resource path.
		if status == http.StatusNotFound {
			status = http.StatusBadRequest
		}
		c.JSON(status, errorFromErr(err))
		return
	}

	if res.AlreadyAvailable {
		c.JSON(http.StatusOK, gin.H{"mensaje": res.Message})
		return
	}

	c.Header("Location", "/devoluciones/"+res.Record.ReturnULID)
	c.JSON(http.StatusCreated, gin.H{"mensaje": res.Message, "datos": res.Record})
}

func (h *Handler) CheckStatus(c *gin.Context) {
	loanID, err := strconv.ParseInt(c.Param("prestamo_id"), 10, 64)
	if err != nil || loanID <= 0 {
		c.JSON(http.StatusBadRequest, errorBody(CodeInvalidArgument, "prestamo_id must be a positive integer"))
		return
	}

	res, err := h.svc.CheckStatus(c.Request.Context(), loanID)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetReturn(c *gin.Context) {
	res, err := h.svc.GetReturn(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) ListReturns(c *gin.Context) {
	f := ReturnFilter{}
	if v := c.Query("prestamo_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.LoanID = &id
		}
	}
	if v := c.Query("recibido_por_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.ReceivedByID = &id
		}
	}
	if v := c.Query("vencido"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Overdue = &b
		}
	}
	if v := c.Query("condicion"); v != "" {
		f.Condition = &v
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.To = &t
		}
	}
	p := Page{
		Limit:  parseIntDefault(c.Query("limit"), DefaultPageLimit),
		Offset: parseIntDefault(c.Query("offset"), 0),
		Order:  c.DefaultQuery("order", "desc"),
	}

	res, err := h.svc.ListReturns(c.Request.Context(), f, p)
	if err != nil {
		c.JSON(ToHTTPStatus(err), errorFromErr(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func parseIntDefault(s string, d int) int {
	if s == "" {
		return d
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}

type errorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func errorBody(code Code, msg string) errorDTO {
	var e errorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

func errorFromErr(err error) errorDTO {
	var msg string
	var code Code = CodeInternal
	if api, ok := err.(*APIError); ok {
		code, msg = api.Code, api.Message
	} else {
		msg = err.Error()
	}
	return errorBody(code, msg)
}
