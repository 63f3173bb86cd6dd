package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exportiq/exportiq/internal/intelligence"
	"github.com/exportiq/exportiq/internal/pricing"
	"github.com/exportiq/exportiq/internal/report"
	"github.com/exportiq/exportiq/internal/store"
)

func (s *Server) handleGenerateIntelligence(c *gin.Context) {
	var req intelligence.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, intelligence.NewInvalidRequest("invalid JSON body"))
		return
	}
	rec, err := s.deps.Intelligence.Generate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "prediction": rec})
}

func (s *Server) handleListIntelligence(c *gin.Context) {
	companyID := c.Query("company_id")
	if companyID == "" {
		writeError(c, intelligence.NewInvalidRequest("company_id is required"))
		return
	}
	f := store.Filter{
		CompanyID:       companyID,
		Type:            intelligence.Type(c.Query("type")),
		Period:          intelligence.Period(c.Query("period")),
		ProductCategory: c.Query("product_category"),
		TargetMarket:    c.Query("target_market"),
	}
	if f.Type != "" && !f.Type.Valid() {
		writeError(c, intelligence.NewInvalidRequest("unknown prediction type"))
		return
	}
	if f.Period != "" && !f.Period.Valid() {
		writeError(c, intelligence.NewInvalidRequest("unknown period"))
		return
	}
	records, err := s.deps.Records.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": records})
}

func (s *Server) handleIntelligenceReport(c *gin.Context) {
	rec, err := s.deps.Records.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	switch c.DefaultQuery("format", "html") {
	case "pdf":
		pdf, err := s.deps.PDF.Render(c.Request.Context(), rec)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="intelligence-report-`+rec.ID+`.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown(rec)))
	case "html":
		doc, err := report.HTML(rec)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
	default:
		writeError(c, intelligence.NewInvalidRequest("format must be html, markdown or pdf"))
	}
}

func (s *Server) handleGeneratePriceOptimization(c *gin.Context) {
	var req pricing.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, intelligence.NewInvalidRequest("invalid JSON body"))
		return
	}
	res, err := s.deps.Pricing.Generate(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"status":           "success",
		"optimization":     res.Record,
		"analysis_summary": res.Summary,
	})
}

func (s *Server) handleListPriceOptimizations(c *gin.Context) {
	companyID := c.Query("company_id")
	if companyID == "" {
		writeError(c, intelligence.NewInvalidRequest("company_id is required"))
		return
	}
	productID := c.Query("product_id")
	targetMarket := c.Query("target_market")

	if productID != "" && targetMarket != "" {
		rec, err := s.deps.Optimizations.Lookup(c.Request.Context(), companyID, productID, targetMarket)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"optimization": rec})
		return
	}

	records, err := s.deps.Optimizations.List(c.Request.Context(), companyID, productID, targetMarket)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"optimizations": records})
}

func (s *Server) handleCreateProduct(c *gin.Context) {
	var p pricing.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		writeError(c, intelligence.NewInvalidRequest("invalid JSON body"))
		return
	}
	created, err := s.deps.Products.Create(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": created})
}

func (s *Server) handleListProducts(c *gin.Context) {
	companyID := c.Query("company_id")
	if companyID == "" {
		writeError(c, intelligence.NewInvalidRequest("company_id is required"))
		return
	}
	products, err := s.deps.Products.List(c.Request.Context(), companyID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) handleDeleteProduct(c *gin.Context) {
	companyID := c.Query("company_id")
	if companyID == "" {
		writeError(c, intelligence.NewInvalidRequest("company_id is required"))
		return
	}
	if err := s.deps.Products.Delete(c.Request.Context(), companyID, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) handleCreateTradeData(c *gin.Context) {
	var t pricing.TradePoint
	if err := c.ShouldBindJSON(&t); err != nil {
		writeError(c, intelligence.NewInvalidRequest("invalid JSON body"))
		return
	}
	if err := s.deps.Trades.Insert(c.Request.Context(), t); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}
