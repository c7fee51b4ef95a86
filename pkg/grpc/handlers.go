package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
	"liyu1981.xyz/predictive-maintenance/pkg/pdm"
)

// decode maps a Struct request onto dst through its JSON form.
func decode(req *structpb.Struct, dst any) error {
	data, err := protojson.Marshal(req)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return status.Errorf(codes.InvalidArgument, "malformed request: %v", err)
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func toStatus(err error) error {
	var rangeErr *common.RangeError
	var shapeErr *common.DataShapeError
	if errors.As(err, &rangeErr) || errors.As(err, &shapeErr) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	common.GetLoggerWith(common.LoggerNameGrpcServer).Error("Call failed", zap.Error(err))
	return status.Error(codes.Internal, err.Error())
}

func validationError(issues z.ZogIssueMap) error {
	return status.Errorf(codes.InvalidArgument, "validation error: %v", issues)
}

type countRequest struct {
	Count int `json:"count"`
}

var countRequestSchema = z.Struct(z.Shape{
	"Count": z.Int().GTE(0).LTE(pdm.MaxBatchCount),
})

func (s *PDMServer) GetPredictions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var r countRequest
	if err := decode(req, &r); err != nil {
		return nil, err
	}
	if issues := countRequestSchema.Validate(&r); issues != nil {
		return nil, validationError(issues)
	}

	batch, err := s.PDM.Prediction.PredictBatch(r.Count)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(batch)
}

type alertsRequest struct {
	Count  int    `json:"count"`
	Source string `json:"source"`
	Days   int    `json:"days"`
}

var alertsRequestSchema = z.Struct(z.Shape{
	"Count":  z.Int().GTE(0).LTE(pdm.MaxBatchCount),
	"Source": z.String(),
	"Days":   z.Int(),
})

// GetAlerts derives alerts from a live batch, or with source "stored" from
// the predictions of the last days (clamped to [1, 90]).
func (s *PDMServer) GetAlerts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var r alertsRequest
	if err := decode(req, &r); err != nil {
		return nil, err
	}
	if issues := alertsRequestSchema.Validate(&r); issues != nil {
		return nil, validationError(issues)
	}

	var alerts []models.AlertRecord
	switch r.Source {
	case "", "live":
		var err error
		if alerts, err = s.PDM.Alert.CurrentAlerts(r.Count); err != nil {
			return nil, toStatus(err)
		}
	case "stored":
		window, err := s.PDM.History.GetHistorical(common.ClampHistoryDays(r.Days))
		if err != nil {
			return nil, toStatus(err)
		}
		records := make([]models.PredictionRecord, 0, len(window.Predictions))
		for _, p := range window.Predictions {
			rec, err := models.RecordFromPrediction(p)
			if err != nil {
				return nil, toStatus(err)
			}
			records = append(records, rec)
		}
		alerts = s.PDM.Alert.AlertsFor(records)
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown source %q", r.Source)
	}
	return encode(map[string]any{"alerts": alerts})
}

type historicalRequest struct {
	Days int `json:"days"`
}

func (s *PDMServer) GetHistorical(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var r historicalRequest
	if err := decode(req, &r); err != nil {
		return nil, err
	}

	window, err := s.PDM.History.GetHistorical(common.ClampHistoryDays(r.Days))
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(window)
}

type maintenanceRequest struct {
	EquipmentID string `json:"equipment_id"`
	Action      string `json:"action"`
	Notes       string `json:"notes"`
}

var maintenanceRequestSchema = z.Struct(z.Shape{
	"EquipmentID": z.String().Min(1).Required(),
	"Action":      z.String().Min(1).Required(),
	"Notes":       z.String(),
})

func (s *PDMServer) RecordMaintenance(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var r maintenanceRequest
	if err := decode(req, &r); err != nil {
		return nil, err
	}
	if issues := maintenanceRequestSchema.Validate(&r); issues != nil {
		return nil, validationError(issues)
	}

	record, err := s.PDM.Maintenance.Record(r.EquipmentID, r.Action, r.Notes)
	if err != nil {
		return nil, toStatus(err)
	}
	return encode(record)
}

// NewRequest builds a Struct request from plain values.
func NewRequest(fields map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return req, nil
}
