package calcrun

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medcalc/medcalc/internal/verify"
)

func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_ListCalculators(t *testing.T) {
	h := NewHandler(testService(t, nil))
	c, rec := newContext(t, http.MethodGet, "/api/v1/calculators", "")

	if err := h.ListCalculators(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []CalculatorSummary `json:"data"`
		Total int                 `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 2 || len(resp.Data) != 2 {
		t.Errorf("total = %d, data = %d", resp.Total, len(resp.Data))
	}
}

func TestHandler_GetCalculator(t *testing.T) {
	h := NewHandler(testService(t, nil))
	c, rec := newContext(t, http.MethodGet, "/api/v1/calculators/double", "")
	c.SetParamNames("id")
	c.SetParamValues("double")

	if err := h.GetCalculator(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var summary CalculatorSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if summary.ID != "double" || len(summary.Inputs) != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestHandler_GetCalculator_NotFound(t *testing.T) {
	h := NewHandler(testService(t, nil))
	c, _ := newContext(t, http.MethodGet, "/api/v1/calculators/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.GetCalculator(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_RunCalculator(t *testing.T) {
	repo := &memRunRepo{}
	h := NewHandler(testService(t, repo))
	c, rec := newContext(t, http.MethodPost, "/api/v1/calculators/double/run", `{"inputs":{"x":5}}`)
	c.SetParamNames("id")
	c.SetParamValues("double")

	if err := h.RunCalculator(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var verdict verify.Verdict
	if err := json.Unmarshal(rec.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if verdict.Status != verify.StatusOK || verdict.Final != 10 {
		t.Errorf("verdict = %+v", verdict)
	}

	_, total, _ := repo.List(context.Background(), 10, 0)
	if total != 1 {
		t.Errorf("expected 1 audit row, got %d", total)
	}
}

func TestHandler_RunCalculator_MissingInputs(t *testing.T) {
	h := NewHandler(testService(t, nil))
	c, _ := newContext(t, http.MethodPost, "/api/v1/calculators/double/run", `{}`)
	c.SetParamNames("id")
	c.SetParamValues("double")

	err := h.RunCalculator(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_RunCalculator_UnknownID(t *testing.T) {
	h := NewHandler(testService(t, nil))
	c, _ := newContext(t, http.MethodPost, "/api/v1/calculators/nope/run", `{"inputs":{"x":5}}`)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.RunCalculator(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_RunCalculator_BlockedVerdictIsStill200(t *testing.T) {
	h := NewHandler(testService(t, nil))
	c, rec := newContext(t, http.MethodPost, "/api/v1/calculators/double/run", `{"inputs":{}}`)
	c.SetParamNames("id")
	c.SetParamValues("double")

	if err := h.RunCalculator(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var verdict verify.Verdict
	if err := json.Unmarshal(rec.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if verdict.Status != verify.StatusBlocked {
		t.Errorf("status = %s, want blocked", verdict.Status)
	}
	if verdict.Reason == "" {
		t.Error("expected a reason naming the missing field")
	}
}

func TestHandler_RunsRequireDatabase(t *testing.T) {
	h := NewHandler(testService(t, nil))

	c, _ := newContext(t, http.MethodGet, "/api/v1/runs", "")
	err := h.ListRuns(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotImplemented {
		t.Errorf("ListRuns: expected 501, got %v", err)
	}

	c, _ = newContext(t, http.MethodGet, "/api/v1/runs/x", "")
	err = h.GetRun(c)
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotImplemented {
		t.Errorf("GetRun: expected 501, got %v", err)
	}
}

func TestHandler_GetRun_InvalidID(t *testing.T) {
	h := NewHandler(testService(t, &memRunRepo{}))
	c, _ := newContext(t, http.MethodGet, "/api/v1/runs/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.GetRun(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_ListAndGetRuns(t *testing.T) {
	repo := &memRunRepo{}
	svc := testService(t, repo)
	h := NewHandler(svc)

	if _, err := svc.Run(context.Background(), "double", map[string]any{"x": 3.0}, ""); err != nil {
		t.Fatal(err)
	}

	c, rec := newContext(t, http.MethodGet, "/api/v1/runs", "")
	if err := h.ListRuns(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data  []RunRecord `json:"data"`
		Total int         `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Total != 1 || len(resp.Data) != 1 {
		t.Fatalf("total = %d, data = %d", resp.Total, len(resp.Data))
	}

	c, rec = newContext(t, http.MethodGet, "/api/v1/runs/"+resp.Data[0].ID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(resp.Data[0].ID.String())
	if err := h.GetRun(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rec2 RunRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &rec2); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec2.CalculatorID != "double" {
		t.Errorf("record = %+v", rec2)
	}
}
