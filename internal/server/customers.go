package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/victorlai/deliverydesk/constants"
	"github.com/victorlai/deliverydesk/internal/customers"
)

type createCustomerRequest struct {
	CustomerCode string `json:"customer_code"`
	Recipient    string `json:"recipient"`
	Address      string `json:"address"`
	TaxID        string `json:"tax_id"`
	Notes        string `json:"notes"`
}

// ListCustomers serves the search box and the full directory view: with a
// `q` of at least two characters it searches, otherwise it lists everything.
func (s *Server) ListCustomers(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) >= constants.SearchMinQueryLength {
		out, err := s.customerSvc.Search(c.Request.Context(), q)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": out})
		return
	}

	out, err := s.customerSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, status.Error(codes.InvalidArgument, "invalid request body"))
		return
	}

	out, err := s.customerSvc.Add(c.Request.Context(), customers.AddCustomerRequest{
		CustomerCode: req.CustomerCode,
		Recipient:    req.Recipient,
		Address:      req.Address,
		TaxID:        req.TaxID,
		Notes:        req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": out})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		AbortWithError(c, status.Error(codes.InvalidArgument, "id must be an integer"))
		return
	}
	if err := s.customerSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportCustomers runs the bulk import pipeline on an uploaded workbook. Gate
// failures return 409 with the exact offending codes in the body.
func (s *Server) ImportCustomers(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, status.Error(codes.InvalidArgument, "multipart field 'file' is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		AbortWithError(c, status.Error(codes.InvalidArgument, "uploaded file is unreadable"))
		return
	}
	defer f.Close()

	result, err := s.importSvc.Import(c.Request.Context(), f)
	if err != nil {
		st, _ := status.FromError(err)
		c.AbortWithStatusJSON(httpStatus(st.Code()), gin.H{
			"error":           errorPayload{st.Message()},
			"duplicate_codes": result.DuplicateCodes,
			"conflict_codes":  result.ConflictCodes,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) ExportCustomers(c *gin.Context) {
	data, err := s.exportSvc.ExportCustomersXLSX(c.Request.Context())
	if err != nil {
		AbortWithError(c, status.Error(codes.Internal, "export failed"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="customers.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
