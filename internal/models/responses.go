package models

import "time"

// HealthResponse represents a basic health check response
// @Description Health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`                 // Health status
	Timestamp time.Time `json:"timestamp" example:"2023-01-01T00:00:00Z"` // Timestamp of the check
	Version   string    `json:"version" example:"1.0.0"`                  // Application version
}

// DBHealthResponse represents a database health check response
// @Description Database health check response
type DBHealthResponse struct {
	Status    string        `json:"status" example:"healthy"`                   // Health status
	Timestamp time.Time     `json:"timestamp" example:"2023-01-01T00:00:00Z"`   // Timestamp of the check
	Connected bool          `json:"connected" example:"true"`                   // Database connection status
	Latency   time.Duration `json:"latency" swaggertype:"string" example:"1ms"` // Database ping latency
	Error     string        `json:"error,omitempty" example:""`                 // Error message if any
}

// WebhookRequest represents an inbound message hand-off from the Gmail
// webhook parsing layer
// @Description Inbound parsed message payload
type WebhookRequest struct {
	UserID    string        `json:"user_id"`    // Owner of the mailbox
	UserEmail string        `json:"user_email"` // Owner's email address
	Message   ParsedMessage `json:"message"`    // Normalized message
}

// WebhookResponse represents the outcome of running the rule pipeline on one message
// @Description Rule pipeline outcome
type WebhookResponse struct {
	Handled  bool            `json:"handled" example:"true"`            // Whether any rule matched
	RuleID   string          `json:"rule_id,omitempty"`                 // The matched rule, if any
	Planned  bool            `json:"planned,omitempty" example:"false"` // True when execution was deferred for approval
	PlanID   string          `json:"plan_id,omitempty"`                 // Stored planned action id
	Outcomes []ActionOutcome `json:"outcomes,omitempty"`                // Per-item execution results (automated path)
	Error    string          `json:"error,omitempty" example:""`        // Error message if any
}

// ActionOutcome is the per-item result of an executor run
// @Description Result of executing one action item
type ActionOutcome struct {
	Type    ActionType `json:"type" example:"LABEL"`       // Action type
	Success bool       `json:"success" example:"true"`     // Whether the Gmail mutation succeeded
	Error   string     `json:"error,omitempty" example:""` // Error message if any
}

// ExecutePlanRequest represents a user-approved planned action execution.
// Args are literal overrides applied on top of the stored resolved items.
// @Description Planned action approval payload
type ExecutePlanRequest struct {
	Args PlanArgs `json:"args"` // Literal argument overrides
}

// PlanArgs holds the user-editable argument overrides for a planned action
// @Description Literal argument overrides
type PlanArgs struct {
	Label   string `json:"label,omitempty"`
	To      string `json:"to,omitempty"`
	Cc      string `json:"cc,omitempty"`
	Bcc     string `json:"bcc,omitempty"`
	Subject string `json:"subject,omitempty"`
	Content string `json:"content,omitempty"`
}

// ExecutePlanResponse represents the result of executing a planned action
// @Description Planned action execution result
type ExecutePlanResponse struct {
	Success  bool            `json:"success" example:"true"`     // Whether all items executed
	Outcomes []ActionOutcome `json:"outcomes,omitempty"`         // Per-item execution results
	Error    string          `json:"error,omitempty" example:""` // Error message if any
}

// RuleRequest represents a rule create/update payload
// @Description Rule definition payload
type RuleRequest struct {
	Name     string   `json:"name"`
	From     *string  `json:"from,omitempty"`
	To       *string  `json:"to,omitempty"`
	Subject  *string  `json:"subject,omitempty"`
	Body     *string  `json:"body,omitempty"`
	Automate bool     `json:"automate"`
	Actions  []Action `json:"actions"`
}

// LoginRequest represents an admin login payload
// @Description Admin login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents an admin login result
// @Description Admin login result
type LoginResponse struct {
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
}
