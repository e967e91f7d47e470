package httpHandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthbridge/repositories/repotest"
	"healthbridge/schemas"
	"healthbridge/services"
	"healthbridge/usecases"

	"github.com/gin-gonic/gin"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSummarizer struct {
	reply string
	err   error
}

func (s stubSummarizer) Summarize(context.Context, string) (string, error) {
	return s.reply, s.err
}

type fixture struct {
	router *gin.Engine
	store  *repotest.Store
}

func newFixture(t *testing.T, summarizer services.Summarizer) *fixture {
	t.Helper()
	RegisterValidation()

	store := repotest.NewStore()
	log, _ := test.NewNullLogger()

	userUC := usecases.NewUserUseCase(store.Users(), log)
	journalUC := usecases.NewJournalUseCase(store.Users(), store.JournalEntries(), nil, log)
	serviceUC := usecases.NewHealthServiceUseCase(store.HealthServices(), log)
	profileUC := usecases.NewProfileUseCase(store.Users(), store.Profiles(), log)
	exportUC := usecases.NewExportUseCase(store.Users(), services.NewPNGEncoder(256), summarizer, time.Second, log)

	users := NewUserHandler(userUC)
	journal := NewJournalEntryHandler(journalUC)
	svc := NewHealthServiceHandler(serviceUC)
	profiles := NewProfileHandler(profileUC)
	export := NewExportHandler(exportUC)

	r := gin.New()
	r.POST("/users", users.CreateUser)
	r.GET("/users/:id", users.GetUser)
	r.GET("/users/:id/qrcode", export.GenerateUserQRCode)
	r.POST("/users/:id/generate-summary", export.GenerateHealthSummary)
	r.POST("/journal", journal.CreateJournalEntry)
	r.GET("/journal/:userId", journal.GetJournalEntries)
	r.POST("/services", svc.CreateHealthService)
	r.GET("/services", svc.GetAllHealthServices)
	r.POST("/profiles", profiles.CreateProfile)
	r.GET("/profiles/:userId", profiles.GetProfile)

	return &fixture{router: r, store: store}
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (f *fixture) createUser(t *testing.T, body string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/users", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out map[string]interface{}
	decode(t, w, &out)
	return out["id"].(string)
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t, stubSummarizer{})

	w := f.do(t, http.MethodPost, "/users", `{"name":"Ana","email":"a@x.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]interface{}
	decode(t, w, &out)
	assert.NotEmpty(t, out["id"])
	assert.Equal(t, "Ana", out["name"])
	assert.Equal(t, "a@x.com", out["email"])
	assert.Contains(t, out, "createdAt")
	assert.Contains(t, out, "emailVerified")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	f := newFixture(t, stubSummarizer{})
	f.createUser(t, `{"email":"a@x.com"}`)
	writes := f.store.Writes

	w := f.do(t, http.MethodPost, "/users", `{"name":"Other","email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"User already exists"}`, w.Body.String())
	assert.Equal(t, writes, f.store.Writes)
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t, stubSummarizer{})

	tests := map[string]string{
		"missing email": `{"name":"Ana"}`,
		"bad email":     `{"email":"not-an-email"}`,
		"not json":      `{`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/users", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			var out map[string]interface{}
			decode(t, w, &out)
			assert.Equal(t, "Invalid request body", out["detail"])
			assert.NotEmpty(t, out["errors"])
		})
	}
}

func TestValidationReportsJSONFieldNames(t *testing.T) {
	f := newFixture(t, stubSummarizer{})

	w := f.do(t, http.MethodPost, "/users", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email failed on 'required'")
}

func TestGetUserNotFound(t *testing.T) {
	f := newFixture(t, stubSummarizer{})

	w := f.do(t, http.MethodGet, "/users/never-created", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"User not found"}`, w.Body.String())
}

func TestGetUserStoreFailureIsOpaque(t *testing.T) {
	f := newFixture(t, stubSummarizer{})
	f.store.Err = errors.New("pq: connection refused")

	w := f.do(t, http.MethodGet, "/users/u-1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, w.Body.String())
}

func TestCreateJournalEntryUnknownUser(t *testing.T) {
	f := newFixture(t, stubSummarizer{})

	w := f.do(t, http.MethodPost, "/journal", `{"userId":"ghost","entryTitle":"Checkup","entryDate":"2024-01-10"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"User not found"}`, w.Body.String())
	assert.Equal(t, 0, f.store.EntryCount())
}

func TestCreateJournalEntryBadDate(t *testing.T) {
	f := newFixture(t, stubSummarizer{})
	id := f.createUser(t, `{"email":"a@x.com"}`)

	w := f.do(t, http.MethodPost, "/journal", `{"userId":"`+id+`","entryTitle":"Checkup","entryDate":"10/01/2024"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, f.store.EntryCount())
}

func TestCreateJournalEntryOptionalFields(t *testing.T) {
	f := newFixture(t, stubSummarizer{})
	id := f.createUser(t, `{"email":"a@x.com"}`)

	w := f.do(t, http.MethodPost, "/journal", `{"userId":"`+id+`","entryTitle":"Bad night","entryDate":"2024-01-11",
		"medicationsTaken":"Ibuprofen","sleep":"5.5","otherNotes":"woke up twice"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out map[string]interface{}
	decode(t, w, &out)
	assert.Equal(t, "2024-01-11", out["entryDate"])
	assert.Equal(t, 5.5, out["sleep"])
	assert.Equal(t, "Ibuprofen", out["medicationsTaken"])
	assert.Nil(t, out["symptomsHad"])
	assert.Equal(t, id, out["userId"])
}

func TestListJournalEntriesEmpty(t *testing.T) {
	f := newFixture(t, stubSummarizer{})

	w := f.do(t, http.MethodGet, "/journal/unknown-user", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHealthServices(t *testing.T) {
	f := newFixture(t, stubSummarizer{})

	w := f.do(t, http.MethodPost, "/services", `{"name":"City Clinic","type":"clinic","address":"1 Main St","latitude":0,"longitude":-74.0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created map[string]interface{}
	decode(t, w, &created)
	assert.Equal(t, "active", created["status"])
	assert.NotEmpty(t, created["id"])
	assert.Nil(t, created["lastVerified"])

	w = f.do(t, http.MethodPost, "/services", `{"name":"Nowhere","type":"clinic","address":"x","latitude":91,"longitude":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/services", `{"name":"Long","type":"`+strings.Repeat("t", 65)+`","address":"x","latitude":0,"longitude":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "type failed on 'max=64'")

	w = f.do(t, http.MethodGet, "/services", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	decode(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "City Clinic", list[0]["name"])
}

func TestCreateProfileTwice(t *testing.T) {
	f := newFixture(t, stubSummarizer{})
	id := f.createUser(t, `{"email":"a@x.com"}`)
	body := `{"userId":"` + id + `","gender":"F","height":"165","weight":60,"dateOfBirth":"1990-05-01","medicalConditions":["asthma"]}`

	w := f.do(t, http.MethodPost, "/profiles", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var out struct {
		Message string                 `json:"message"`
		Profile map[string]interface{} `json:"profile"`
	}
	decode(t, w, &out)
	assert.Equal(t, "Profile created successfully", out.Message)
	assert.Equal(t, "1990-05-01", out.Profile["dateOfBirth"])
	assert.Equal(t, float64(165), out.Profile["height"])
	assert.Equal(t, []interface{}{"asthma"}, out.Profile["medicalConditions"])

	w = f.do(t, http.MethodPost, "/profiles", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"detail":"Profile already exists for this user"}`, w.Body.String())
	assert.Equal(t, 1, f.store.ProfileCount(id))

	w = f.do(t, http.MethodGet, "/profiles/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateProfileUnknownUser(t *testing.T) {
	f := newFixture(t, stubSummarizer{})

	w := f.do(t, http.MethodPost, "/profiles", `{"userId":"ghost","gender":"F","height":165,"weight":60,"dateOfBirth":"1990-05-01"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"User not found"}`, w.Body.String())
}

func TestCreateProfileValidation(t *testing.T) {
	f := newFixture(t, stubSummarizer{})
	id := f.createUser(t, `{"email":"a@x.com"}`)

	tests := map[string]string{
		"zero height":     `"gender":"F","height":0,"weight":60`,
		"infinite height": `"gender":"F","height":"Inf","weight":60`,
		"nan weight":      `"gender":"F","height":165,"weight":"NaN"`,
		"long gender":     `"gender":"` + strings.Repeat("x", 33) + `","height":165,"weight":60`,
	}
	for name, fields := range tests {
		t.Run(name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/profiles", `{"userId":"`+id+`",`+fields+`,"dateOfBirth":"1990-05-01"}`)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, 0, f.store.ProfileCount(id))
		})
	}

	// the user's export still works after the rejected attempts
	w := f.do(t, http.MethodGet, "/users/"+id+"/qrcode", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserQRCode(t *testing.T) {
	f := newFixture(t, stubSummarizer{})
	id := f.createUser(t, `{"name":"Ana","email":"a@x.com"}`)

	w := f.do(t, http.MethodGet, "/users/"+id+"/qrcode", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())

	payload := decodeQR(t, w.Body.Bytes())
	require.NotNil(t, payload.Name)
	assert.Equal(t, "Ana", *payload.Name)
	assert.Equal(t, "a@x.com", payload.Email)
	assert.Nil(t, payload.Profile)
	require.NotNil(t, payload.JournalEntries)
	assert.Empty(t, payload.JournalEntries)

	w = f.do(t, http.MethodGet, "/users/ghost/qrcode", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// decodeQR reads the record payload back out of a QR code PNG.
func decodeQR(t *testing.T, data []byte) schemas.RecordPayload {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)
	result, err := qrcode.NewQRCodeReader().Decode(bmp, nil)
	require.NoError(t, err)

	var payload schemas.RecordPayload
	require.NoError(t, json.Unmarshal([]byte(result.GetText()), &payload))
	return payload
}

func TestGenerateSummary(t *testing.T) {
	f := newFixture(t, stubSummarizer{reply: "**Summary**\nAll good."})
	id := f.createUser(t, `{"email":"a@x.com"}`)

	w := f.do(t, http.MethodPost, "/users/"+id+"/generate-summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"summary":"**Summary**\nAll good."}`, w.Body.String())

	w = f.do(t, http.MethodPost, "/users/ghost/generate-summary", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateSummaryUpstreamFailure(t *testing.T) {
	f := newFixture(t, stubSummarizer{err: errors.New("model unavailable")})
	id := f.createUser(t, `{"email":"a@x.com"}`)

	w := f.do(t, http.MethodPost, "/users/"+id+"/generate-summary", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, w.Body.String())
}

func TestAnaEndToEnd(t *testing.T) {
	f := newFixture(t, stubSummarizer{})

	userID := f.createUser(t, `{"name":"Ana","email":"a@x.com"}`)

	w := f.do(t, http.MethodPost, "/profiles",
		`{"userId":"`+userID+`","gender":"F","height":165,"weight":60,"dateOfBirth":"1990-05-01"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodPost, "/journal",
		`{"userId":"`+userID+`","entryTitle":"Checkup","entryDate":"2024-01-10"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, "/journal/"+userID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []map[string]interface{}
	decode(t, w, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-01-10", entries[0]["entryDate"])
	assert.Equal(t, "Checkup", entries[0]["entryTitle"])
}
