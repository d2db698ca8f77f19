package langserver

// Response schema of the GetUserStatus RPC. Fields mirror the service's
// camelCase JSON; everything is optional because the server omits empty
// values.

// StatusResponse is the top-level GetUserStatus response.
type StatusResponse struct {
	UserStatus *UserStatus `json:"userStatus,omitempty"`
}

// UserStatus describes the signed-in account.
type UserStatus struct {
	DisableTelemetry             bool                    `json:"disableTelemetry,omitempty"`
	Name                         string                  `json:"name,omitempty"`
	Email                        string                  `json:"email,omitempty"`
	PlanStatus                   *PlanStatus             `json:"planStatus,omitempty"`
	CascadeModelConfigData       *CascadeModelConfigData `json:"cascadeModelConfigData,omitempty"`
	AcceptedLatestTermsOfService bool                    `json:"acceptedLatestTermsOfService,omitempty"`
}

// PlanStatus carries the subscription plan and remaining credit balances.
type PlanStatus struct {
	PlanInfo               *PlanInfo `json:"planInfo,omitempty"`
	AvailablePromptCredits int64     `json:"availablePromptCredits,omitempty"`
	AvailableFlowCredits   int64     `json:"availableFlowCredits,omitempty"`
}

// PlanInfo describes the subscription tier and its limits.
type PlanInfo struct {
	TeamsTier                   string `json:"teamsTier,omitempty"`
	PlanName                    string `json:"planName,omitempty"`
	HasAutocompleteFastMode     bool   `json:"hasAutocompleteFastMode,omitempty"`
	AllowStickyPremiumModels    bool   `json:"allowStickyPremiumModels,omitempty"`
	AllowPremiumCommandModels   bool   `json:"allowPremiumCommandModels,omitempty"`
	MaxNumPremiumChatMessages   string `json:"maxNumPremiumChatMessages,omitempty"`
	MaxNumChatInputTokens       string `json:"maxNumChatInputTokens,omitempty"`
	MonthlyPromptCredits        int64  `json:"monthlyPromptCredits,omitempty"`
	MonthlyFlowCredits          int64  `json:"monthlyFlowCredits,omitempty"`
	CanBuyMoreCredits           bool   `json:"canBuyMoreCredits,omitempty"`
	CascadeWebSearchEnabled     bool   `json:"cascadeWebSearchEnabled,omitempty"`
	CascadeCanAutoRunCommands   bool   `json:"cascadeCanAutoRunCommands,omitempty"`
	CanGenerateCommitMessages   bool   `json:"canGenerateCommitMessages,omitempty"`
	KnowledgeBaseEnabled        bool   `json:"knowledgeBaseEnabled,omitempty"`
	CanAllowCascadeInBackground bool   `json:"canAllowCascadeInBackground,omitempty"`
	BrowserEnabled              bool   `json:"browserEnabled,omitempty"`
}

// CascadeModelConfigData lists the models offered to this account.
type CascadeModelConfigData struct {
	ClientModelConfigs []ClientModelConfig `json:"clientModelConfigs,omitempty"`
}

// ClientModelConfig is one selectable model entry.
type ClientModelConfig struct {
	Label          string        `json:"label,omitempty"`
	ModelOrAlias   *ModelOrAlias `json:"modelOrAlias,omitempty"`
	SupportsImages *bool         `json:"supportsImages,omitempty"`
	IsRecommended  bool          `json:"isRecommended,omitempty"`
	AllowedTiers   []string      `json:"allowedTiers,omitempty"`
	QuotaInfo      *QuotaInfo    `json:"quotaInfo,omitempty"`
}

// ModelOrAlias names a concrete model.
type ModelOrAlias struct {
	Model string `json:"model,omitempty"`
}

// QuotaInfo reports the remaining quota for one model.
type QuotaInfo struct {
	RemainingFraction float64 `json:"remainingFraction,omitempty"`
	ResetTime         string  `json:"resetTime,omitempty"`
}
