package models

// Row statuses
const (
	RowStatusNew     = "new"
	RowStatusUpdated = "updated"
	RowStatusSkipped = "skipped"
	RowStatusError   = "error"
)

// MatchType is the kind of equality that produced a duplicate match
type MatchType string

const (
	MatchTypeNone         MatchType = ""
	MatchTypePhone        MatchType = "phone"
	MatchTypeNameAndPhone MatchType = "name_and_phone"
	MatchTypeName         MatchType = "name"
)

// ParsedRow is one raw spreadsheet line
type ParsedRow struct {
	Name      *string `json:"name"`
	Phone     string  `json:"phone"`
	Region    string  `json:"region"`
	Status    string  `json:"status,omitempty"`
	RowNumber int     `json:"rowNumber"`
}

// ParsedName holds the name components of a row
type ParsedName struct {
	LastName   *string `json:"lastName"`
	FirstName  *string `json:"firstName"`
	MiddleName *string `json:"middleName"`
}

// ParsedPhone is one phone candidate extracted from a phone cell
type ParsedPhone struct {
	Normalized string `json:"normalized"`
	Original   string `json:"original"`
	IsValid    bool   `json:"isValid"`
}

// ProcessedRow is the per-row audit record of an import
type ProcessedRow struct {
	Row      ParsedRow     `json:"row"`
	Name     ParsedName    `json:"name"`
	Phones   []ParsedPhone `json:"phones"`
	RegionID string        `json:"regionId,omitempty"`
	Status   string        `json:"status"`
	Error    string        `json:"error,omitempty"`
	ClientID string        `json:"clientId,omitempty"`
	Reason   string        `json:"reason,omitempty"`
}

// ImportStatistics counts row outcomes of a single run
type ImportStatistics struct {
	Total          int `json:"total"`
	Created        int `json:"created"`
	Updated        int `json:"updated"`
	Skipped        int `json:"skipped"`
	Errors         int `json:"errors"`
	RegionsCreated int `json:"regionsCreated"`
}

// ImportErrorData echoes the raw fields of a failed row
type ImportErrorData struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Region string `json:"region"`
}

// ImportError is a row-scoped failure reported to the caller
type ImportError struct {
	RowNumber int              `json:"rowNumber"`
	Message   string           `json:"message"`
	Data      *ImportErrorData `json:"data,omitempty"`
}

// ImportResult is the terminal output of one import invocation
type ImportResult struct {
	Success       bool             `json:"success"`
	Statistics    ImportStatistics `json:"statistics"`
	ProcessedRows []ProcessedRow   `json:"processedRows"`
	Errors        []ImportError    `json:"errors"`
	GroupID       string           `json:"groupId"`
	GroupName     string           `json:"groupName"`
}

// StrategyAction is the concrete mutation decided for a row
type StrategyAction string

const (
	StrategyCreate StrategyAction = "create"
	StrategyUpdate StrategyAction = "update"
	StrategySkip   StrategyAction = "skip"
)

// DeduplicationStrategy is handed from the decision engine to the mutation step
type DeduplicationStrategy struct {
	Action           StrategyAction `json:"action"`
	Reason           string         `json:"reason"`
	ExistingClientID string         `json:"existingClientId,omitempty"`
}

// ImportRequest is the JSON body of an import with inline rows
type ImportRequest struct {
	ConfigID string        `json:"config_id"`
	Config   *ImportConfig `json:"config"`
	Rows     []ParsedRow   `json:"rows"`
}

// PreviewRow is a parsed row without any store interaction
type PreviewRow struct {
	Row    ParsedRow     `json:"row"`
	Name   ParsedName    `json:"name"`
	Phones []ParsedPhone `json:"phones"`
}

// PreviewResponse is returned by the import preview endpoint
type PreviewResponse struct {
	TotalRows int          `json:"totalRows"`
	Rows      []PreviewRow `json:"rows"`
}
