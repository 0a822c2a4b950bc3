package handler

import (
	"linewatch/internal/app/seen"
	"linewatch/internal/configs"
	"linewatch/internal/lineapi"
)

// AppDeps carries the shared dependencies handlers close over.
type AppDeps struct {
	Config *configs.AppConfig
	Store  seen.Store
	Ledger seen.PaymentLedger
	Line   *lineapi.Client

	// StorageMode is the variant resolved at startup, reported by /health.
	StorageMode string
}
