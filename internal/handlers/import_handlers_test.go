package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/prefeitura-rio/app-contacts/internal/models"
	"github.com/prefeitura-rio/app-contacts/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = "ФИО;Телефон;Регион\n" +
	"Иванов Иван Иванович;8 (916) 123-45-67;Москва\n" +
	"Иванов Иван;+7 916 123 45 67;Москва\n"

func TestImportContacts_MultipartWithDefaultConfig(t *testing.T) {
	server := newTestServer(t)
	claims := createUserClaims(testUser)

	w := server.do(multipartRequest(t, "/v1/groups/"+testGroupID+"/import", "contacts.csv", testCSV, nil), &claims)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result models.ImportResult
	decode(t, w, &result)

	assert.True(t, result.Success)
	assert.Equal(t, models.ImportStatistics{Total: 2, Created: 1, Skipped: 1, RegionsCreated: 1}, result.Statistics)
	assert.Equal(t, "Spring campaign", result.GroupName)
	require.Len(t, result.ProcessedRows, 2)
	assert.Equal(t, 2, result.ProcessedRows[0].Row.RowNumber)
	assert.Equal(t, services.ReasonDuplicateNoChange, result.ProcessedRows[1].Reason)
	assert.Len(t, server.store.Contacts(), 1)
}

func TestImportContacts_JSONRowsWithPreset(t *testing.T) {
	server := newTestServer(t)
	claims := createUserClaims(testUser)

	body := models.ImportRequest{
		ConfigID: services.PresetIDPrefix + "full_import",
		Rows: []models.ParsedRow{
			{Name: models.StringPtr("Петров Пётр"), Phone: "89031112233", Region: "Тула"},
			{Name: models.StringPtr("Петров Пётр"), Phone: "89031112233", Region: "Тула"},
		},
	}
	w := server.do(jsonRequest(t, http.MethodPost, "/v1/groups/"+testGroupID+"/import", body), &claims)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result models.ImportResult
	decode(t, w, &result)

	assert.Equal(t, 2, result.Statistics.Created)
	assert.Equal(t, 1, result.ProcessedRows[0].Row.RowNumber)
	assert.Equal(t, 2, result.ProcessedRows[1].Row.RowNumber)
	assert.Len(t, server.store.Contacts(), 2)
}

func TestImportContacts_InlineConfigInMultipart(t *testing.T) {
	server := newTestServer(t)
	claims := createUserClaims(testUser)

	inline, err := json.Marshal(models.ImportConfig{
		SearchScope:       models.SearchScopeConfig{Scopes: []models.SearchScope{models.SearchScopeNone}},
		NoDuplicateAction: models.NoDuplicateActionCreate,
	})
	require.NoError(t, err)

	req := multipartRequest(t, "/v1/groups/"+testGroupID+"/import", "contacts.csv", testCSV, map[string]string{
		"config": string(inline),
	})
	w := server.do(req, &claims)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result models.ImportResult
	decode(t, w, &result)
	assert.Equal(t, 2, result.Statistics.Created)
}

func TestImportContacts_Rejections(t *testing.T) {
	user := createUserClaims(testUser)
	rows := []models.ParsedRow{{Name: models.StringPtr("Иванов Иван"), Phone: "89161234567", RowNumber: 1}}

	tests := []struct {
		name     string
		claims   *models.JWTClaims
		groupID  string
		body     interface{}
		wantCode int
	}{
		{
			name:     "missing token",
			groupID:  testGroupID,
			body:     models.ImportRequest{Rows: rows},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "unknown group",
			claims:   &user,
			groupID:  "group-missing",
			body:     models.ImportRequest{Rows: rows},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "group of another owner",
			claims:   &user,
			groupID:  "group-foreign",
			body:     models.ImportRequest{Rows: rows},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "unknown config",
			claims:   &user,
			groupID:  testGroupID,
			body:     models.ImportRequest{ConfigID: "missing-config", Rows: rows},
			wantCode: http.StatusNotFound,
		},
		{
			name:    "all users scope without admin role",
			claims:  &user,
			groupID: testGroupID,
			body: models.ImportRequest{
				Config: &models.ImportConfig{SearchScope: models.SearchScopeConfig{
					Scopes: []models.SearchScope{models.SearchScopeAllUsers},
				}},
				Rows: rows,
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "invalid inline config",
			claims:  &user,
			groupID: testGroupID,
			body: models.ImportRequest{
				Config: &models.ImportConfig{NoDuplicateAction: "merge"},
				Rows:   rows,
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "no rows",
			claims:   &user,
			groupID:  testGroupID,
			body:     models.ImportRequest{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed body",
			claims:   &user,
			groupID:  testGroupID,
			body:     "not an object",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t)

			w := server.do(jsonRequest(t, http.MethodPost, "/v1/groups/"+tt.groupID+"/import", tt.body), tt.claims)

			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
			assert.Empty(t, server.store.Contacts())
		})
	}
}

func TestImportContacts_AdminSearchesAllUsers(t *testing.T) {
	server := newTestServer(t)
	admin := createAdminClaims(testUser)

	body := models.ImportRequest{
		Config: &models.ImportConfig{SearchScope: models.SearchScopeConfig{
			Scopes: []models.SearchScope{models.SearchScopeAllUsers},
		}},
		Rows: []models.ParsedRow{{Name: models.StringPtr("Иванов Иван"), Phone: "89161234567"}},
	}
	w := server.do(jsonRequest(t, http.MethodPost, "/v1/groups/"+testGroupID+"/import", body), &admin)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestImportContacts_FileErrors(t *testing.T) {
	claims := createUserClaims(testUser)

	tests := []struct {
		name     string
		filename string
		content  string
		wantCode int
	}{
		{"unsupported extension", "contacts.pdf", "%PDF", http.StatusBadRequest},
		{"header only", "contacts.csv", "ФИО;Телефон;Регион\n", http.StatusBadRequest},
		{"too large", "contacts.csv", strings.Repeat("a", 1<<20+1), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t)

			w := server.do(multipartRequest(t, "/v1/groups/"+testGroupID+"/import", tt.filename, tt.content, nil), &claims)

			assert.Equal(t, tt.wantCode, w.Code, w.Body.String())
		})
	}
}

func TestPreviewImport(t *testing.T) {
	server := newTestServer(t)
	claims := createUserClaims(testUser)

	w := server.do(multipartRequest(t, "/v1/import/preview", "contacts.csv", testCSV, nil), &claims)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var preview models.PreviewResponse
	decode(t, w, &preview)

	assert.Equal(t, 2, preview.TotalRows)
	require.Len(t, preview.Rows, 2)
	assert.Equal(t, "Иванов", models.StringValue(preview.Rows[0].Name.LastName))
	require.Len(t, preview.Rows[0].Phones, 1)
	assert.Equal(t, "+79161234567", preview.Rows[0].Phones[0].Normalized)
	assert.Empty(t, server.store.Contacts())
}

func TestImportContacts_RateLimited(t *testing.T) {
	server := newRateLimitedTestServer(t, 1)
	claims := createUserClaims(testUser)
	body := models.ImportRequest{
		ConfigID: services.PresetIDPrefix + "group_search",
		Rows:     []models.ParsedRow{{Name: models.StringPtr("Иванов Иван"), Phone: "89161234567"}},
	}

	w := server.do(jsonRequest(t, http.MethodPost, "/v1/groups/"+testGroupID+"/import", body), &claims)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = server.do(jsonRequest(t, http.MethodPost, "/v1/groups/"+testGroupID+"/import", body), &claims)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	other := createUserClaims("user-2")
	w = server.do(jsonRequest(t, http.MethodPost, "/v1/groups/group-foreign/import", body), &other)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
