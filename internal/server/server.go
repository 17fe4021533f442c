package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/victorlai/deliverydesk/internal/customers"
	"github.com/victorlai/deliverydesk/internal/export"
	"github.com/victorlai/deliverydesk/internal/importer"
	"github.com/victorlai/deliverydesk/internal/receiptform"
)

// Server wires the two applications' services onto one HTTP surface. The
// browser UI is the only intended client; everything speaks JSON except the
// spreadsheet endpoints.
type Server struct {
	customerSvc *customers.Service
	importSvc   *importer.Service
	exportSvc   *export.Service
	entries     *receiptform.EntryStore
	form        *receiptform.Workflow
	logger      *slog.Logger
}

func New(
	customerSvc *customers.Service,
	importSvc *importer.Service,
	exportSvc *export.Service,
	entries *receiptform.EntryStore,
	form *receiptform.Workflow,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		customerSvc: customerSvc,
		importSvc:   importSvc,
		exportSvc:   exportSvc,
		entries:     entries,
		form:        form,
		logger:      logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/customers", s.ListCustomers)
		api.POST("/customers", s.CreateCustomer)
		api.DELETE("/customers/:id", s.DeleteCustomer)
		api.POST("/customers/import", s.ImportCustomers)
		api.GET("/customers/export", s.ExportCustomers)

		api.GET("/entries", s.ListEntries)
		api.POST("/entries", s.CreateEntry)
		api.PATCH("/entries/:id", s.UpdateEntry)
		api.DELETE("/entries/:id", s.DeleteEntry)
		api.POST("/entries/:id/image", s.AttachEntryImage)
		api.POST("/entries/:id/recognize", s.RecognizeEntry)

		api.GET("/print-summary", s.PrintSummary)
	}
	return r
}
