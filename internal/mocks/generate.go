// Package mocks provides mock implementations for testing the dashboard.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the directory ports. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockDir := mocks.NewMockAdminDirectory(ctrl)
//	mockDir.EXPECT().ListAdmins(gomock.Any(), gomock.Any()).Return(admins, nil)
package mocks

// Generate mock for AdminDirectory interface from internal/ports.
// This creates MockAdminDirectory with methods:
// ListAdmins, CreateAdmin, UpdateAdmin, DeleteAdmin
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=admin_directory_mock.go github.com/brandreach/ambassador-ui-api/internal/ports AdminDirectory

// Generate mock for AmbassadorDirectory interface from internal/ports.
// This creates MockAmbassadorDirectory with methods:
// ListAmbassadors, CreateAmbassador, DeleteAmbassador
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ambassador_directory_mock.go github.com/brandreach/ambassador-ui-api/internal/ports AmbassadorDirectory

// Generate mock for ReceiptReviewer interface from internal/ports.
// This creates MockReceiptReviewer with methods:
// ListReceipts, ApproveReceipt, RejectReceipt
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=receipt_reviewer_mock.go github.com/brandreach/ambassador-ui-api/internal/ports ReceiptReviewer
