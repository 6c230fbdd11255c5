package models

// The enumerations below are closed sets persisted as their string values.
// Each has a default that applies when the value is left empty on write.
// Rows written by older releases may hold values outside these sets; they are
// read back unchanged.

// KnowledgeLevel is a client's investment knowledge and experience.
type KnowledgeLevel string

const (
	KnowledgeLow    KnowledgeLevel = "Low"
	KnowledgeMedium KnowledgeLevel = "Medium"
	KnowledgeHigh   KnowledgeLevel = "High"
)

// DefaultKnowledgeLevel applies when no level is given.
const DefaultKnowledgeLevel = KnowledgeMedium

// Valid reports whether k is one of the known levels.
func (k KnowledgeLevel) Valid() bool {
	switch k {
	case KnowledgeLow, KnowledgeMedium, KnowledgeHigh:
		return true
	}
	return false
}

// OrDefault returns k, or the default when k is empty.
func (k KnowledgeLevel) OrDefault() KnowledgeLevel {
	return KnowledgeLevel(stringOrDefault(string(k), string(DefaultKnowledgeLevel)))
}

// Objective is a client's investment objective.
type Objective string

const (
	ObjectiveBalance Objective = "Balance"
	ObjectiveGrowth  Objective = "Growth"
	ObjectiveIncome  Objective = "Income"
)

// DefaultObjective applies when no objective is given.
const DefaultObjective = ObjectiveBalance

// Valid reports whether o is one of the known objectives.
func (o Objective) Valid() bool {
	switch o {
	case ObjectiveBalance, ObjectiveGrowth, ObjectiveIncome:
		return true
	}
	return false
}

// OrDefault returns o, or the default when o is empty.
func (o Objective) OrDefault() Objective {
	return Objective(stringOrDefault(string(o), string(DefaultObjective)))
}

// RiskLevel is used both for a client's risk tolerance and a trade's asset risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// DefaultRiskLevel applies when no risk level is given.
const DefaultRiskLevel = RiskMedium

// Valid reports whether r is one of the known risk levels.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// OrDefault returns r, or the default when r is empty.
func (r RiskLevel) OrDefault() RiskLevel {
	return RiskLevel(stringOrDefault(string(r), string(DefaultRiskLevel)))
}

// TradeAccountType is the wrapper a trade is placed in.
type TradeAccountType string

const (
	TradeAccountISA TradeAccountType = "ISA"
	TradeAccountGIA TradeAccountType = "GIA"
)

// DefaultTradeAccountType applies when no account type is given.
const DefaultTradeAccountType = TradeAccountISA

// Valid reports whether a is one of the known account types.
func (a TradeAccountType) Valid() bool {
	switch a {
	case TradeAccountISA, TradeAccountGIA:
		return true
	}
	return false
}

// OrDefault returns a, or the default when a is empty.
func (a TradeAccountType) OrDefault() TradeAccountType {
	return TradeAccountType(stringOrDefault(string(a), string(DefaultTradeAccountType)))
}

// AssetType is the kind of instrument traded.
type AssetType string

const (
	AssetTypeEquity AssetType = "Equity"
	AssetTypeCFDSB  AssetType = "CFD/SB"
)

// DefaultAssetType applies when no asset type is given.
const DefaultAssetType = AssetTypeEquity

// Valid reports whether a is one of the known asset types.
func (a AssetType) Valid() bool {
	switch a {
	case AssetTypeEquity, AssetTypeCFDSB:
		return true
	}
	return false
}

// OrDefault returns a, or the default when a is empty.
func (a AssetType) OrDefault() AssetType {
	return AssetType(stringOrDefault(string(a), string(DefaultAssetType)))
}

// TradeSide is the direction of a trade.
type TradeSide string

const (
	SideBuy    TradeSide = "Buy"
	SideSell   TradeSide = "Sell"
	SideInvest TradeSide = "Invest"
)

// DefaultTradeSide applies when no side is given.
const DefaultTradeSide = SideBuy

// Valid reports whether s is one of the known sides.
func (s TradeSide) Valid() bool {
	switch s {
	case SideBuy, SideSell, SideInvest:
		return true
	}
	return false
}

// OrDefault returns s, or the default when s is empty.
func (s TradeSide) OrDefault() TradeSide {
	return TradeSide(stringOrDefault(string(s), string(DefaultTradeSide)))
}

// LetterStatus is the lifecycle state of a suitability letter.
type LetterStatus string

const (
	LetterStatusDraft LetterStatus = "draft"
	LetterStatusFinal LetterStatus = "final"
)

// DefaultLetterStatus applies when no status is given.
const DefaultLetterStatus = LetterStatusDraft

// Valid reports whether s is one of the known statuses.
func (s LetterStatus) Valid() bool {
	switch s {
	case LetterStatusDraft, LetterStatusFinal:
		return true
	}
	return false
}

// OrDefault returns s, or the default when s is empty.
func (s LetterStatus) OrDefault() LetterStatus {
	return LetterStatus(stringOrDefault(string(s), string(DefaultLetterStatus)))
}
