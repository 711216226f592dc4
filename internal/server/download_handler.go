package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/export"
	"github.com/samuelkim085/UPS-dailyShipmentDetailReport/internal/extract"
)

type downloadRequest struct {
	Records []extract.Record `json:"records"`
	Format  string           `json:"format"`
}

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleDownload re-renders a previously extracted record sequence as a CSV
// or XLSX attachment.
func (s *Server) handleDownload(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "read body failed"})
	}

	if err := validateJSONAgainstSchema(downloadJSONSchema(), body); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: firstLine(err.Error()), Code: "INVALID_PAYLOAD",
		})
	}

	var req downloadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed JSON"})
	}

	switch req.Format {
	case "xlsx":
		data, err := export.BuildXLSX(req.Records)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: firstLine(err.Error())})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="shipments.xlsx"`)
		return c.Blob(http.StatusOK, xlsxMIME, data)
	default: // csv
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, req.Records); err != nil {
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: firstLine(err.Error())})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="shipments.csv"`)
		return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
	}
}

// validateJSONAgainstSchema validates data against schemaMap.
func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
