package server

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/victorlai/deliverydesk/internal/receiptform"
)

func (s *Server) ListEntries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.entries.List()})
}

func (s *Server) CreateEntry(c *gin.Context) {
	e := s.entries.Add()
	c.JSON(http.StatusCreated, gin.H{"data": e})
}

type updateEntryRequest struct {
	DriverName  *string `json:"driver_name"`
	Amount      *string `json:"amount"`
	Note        *string `json:"note"`
	ImageHeight *int    `json:"image_height"`
}

func (s *Server) UpdateEntry(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.entries.Get(id); !ok {
		AbortWithError(c, status.Error(codes.NotFound, "entry not found"))
		return
	}

	var req updateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, status.Error(codes.InvalidArgument, "invalid request body"))
		return
	}

	s.entries.Update(id, receiptform.Patch{
		DriverName:  req.DriverName,
		Amount:      req.Amount,
		Note:        req.Note,
		ImageHeight: req.ImageHeight,
	})
	e, _ := s.entries.Get(id)
	c.JSON(http.StatusOK, gin.H{"data": e})
}

func (s *Server) DeleteEntry(c *gin.Context) {
	s.entries.Remove(c.Param("id"))
	// The store may have synthesized a replacement entry; return the list so
	// the client does not need a second round trip.
	c.JSON(http.StatusOK, gin.H{"data": s.entries.List()})
}

type attachImageRequest struct {
	DataURL string `json:"data_url"`
}

// AttachEntryImage accepts either a multipart upload or a pasted data URL and
// triggers recognition on the entry.
func (s *Server) AttachEntryImage(c *gin.Context) {
	id := c.Param("id")
	// Recognition outlives the request; a client navigating away must not
	// cancel the in-flight engine call.
	ctx := context.WithoutCancel(c.Request.Context())

	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			AbortWithError(c, status.Error(codes.InvalidArgument, "uploaded file is unreadable"))
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			AbortWithError(c, status.Error(codes.InvalidArgument, "uploaded file is unreadable"))
			return
		}
		if err := s.form.AttachImage(ctx, id, data); err != nil {
			AbortWithError(c, err)
			return
		}
	} else {
		var req attachImageRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.DataURL == "" {
			AbortWithError(c, status.Error(codes.InvalidArgument, "a multipart 'file' or a 'data_url' is required"))
			return
		}
		if err := s.form.AttachDataURL(ctx, id, req.DataURL); err != nil {
			AbortWithError(c, err)
			return
		}
	}

	e, _ := s.entries.Get(id)
	c.JSON(http.StatusAccepted, gin.H{"data": e})
}

func (s *Server) RecognizeEntry(c *gin.Context) {
	id := c.Param("id")
	if err := s.form.Recognize(context.WithoutCancel(c.Request.Context()), id); err != nil {
		AbortWithError(c, err)
		return
	}
	e, _ := s.entries.Get(id)
	c.JSON(http.StatusAccepted, gin.H{"data": e})
}

func (s *Server) PrintSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": receiptform.ProjectPrint(s.entries.List())})
}
