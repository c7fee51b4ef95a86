package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"github.com/gin-gonic/gin"

	"liyu1981.xyz/predictive-maintenance/pkg/classifier"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/models"
	"liyu1981.xyz/predictive-maintenance/pkg/pdm"
	"liyu1981.xyz/predictive-maintenance/pkg/signal"
)

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (rs *RestfulServer) APIHealth(c *gin.Context) {
	body := gin.H{
		"status": "ok",
		"time":   common.FormatTimestamp(time.Now()),
		"model":  rs.PDM.Model.Status().Source,
	}
	if rs.DB != nil {
		if err := rs.DB.Ping(); err != nil {
			body["status"] = "degraded"
			body["db"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["db"] = "ok"
	}
	c.JSON(http.StatusOK, body)
}

func (rs *RestfulServer) GetSensorData(c *gin.Context) {
	reading, err := rs.PDM.Sensor.LatestReading()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

type CountQuery struct {
	Count int `zog:"count"`
}

var countQuerySchema = z.Struct(z.Shape{
	"Count": z.Int().GTE(0).LTE(pdm.MaxBatchCount),
})

func parseCount(c *gin.Context) (int, bool) {
	var q CountQuery
	if errs := countQuerySchema.Parse(zhttp.Request(c.Request), &q); errs != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": errs})
		return 0, false
	}
	return q.Count, true
}

func (rs *RestfulServer) GetPredictions(c *gin.Context) {
	count, ok := parseCount(c)
	if !ok {
		return
	}
	batch, err := rs.PDM.Prediction.PredictBatch(count)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

type LivePredictionRequest struct {
	Samples []map[string]any `json:"samples"`
}

// PostPredictions scores live readings. Each sample is keyed by column name
// and must carry every feature column; equipment_id and timestamp are
// optional.
func (rs *RestfulServer) PostPredictions(c *gin.Context) {
	var req LivePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ids, samples, err := decodeLiveSamples(req.Samples)
	if err != nil {
		abortWithError(c, err)
		return
	}

	batch, err := rs.PDM.Prediction.PredictSamples(ids, samples)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func decodeLiveSamples(raw []map[string]any) ([]string, []models.SensorSample, error) {
	if len(raw) == 0 {
		return nil, nil, common.NewRangeError("samples", 0, "must not be empty")
	}

	ids := make([]string, len(raw))
	stamps := make([]time.Time, len(raw))
	features := make([]map[string]float64, len(raw))
	for i, s := range raw {
		if id, ok := s["equipment_id"].(string); ok {
			ids[i] = id
		}
		if ts, ok := s["timestamp"].(string); ok && ts != "" {
			t, err := common.ParseTimestamp(ts)
			if err != nil {
				return nil, nil, common.NewRangeError(fmt.Sprintf("samples[%d].timestamp", i), ts, "not an ISO-8601 timestamp")
			}
			stamps[i] = t
		}
		features[i] = map[string]float64{}
		for _, col := range models.FeatureColumns {
			v, present := s[col]
			if !present {
				continue
			}
			f, ok := v.(float64)
			if !ok {
				return nil, nil, common.NewRangeError(fmt.Sprintf("samples[%d].%s", i, col), v, "must be a number")
			}
			features[i][col] = f
		}
	}

	frame, err := classifier.FrameFromRecords(features)
	if err != nil {
		return nil, nil, err
	}
	rows, err := frame.Select(models.FeatureColumns)
	if err != nil {
		return nil, nil, err
	}

	samples := make([]models.SensorSample, len(rows))
	for i, row := range rows {
		samples[i] = models.SensorSample{
			Timestamp:   stamps[i],
			Temperature: row[0],
			Vibration:   row[1],
			Pressure:    row[2],
			Current:     row[3],
		}
	}
	return ids, samples, nil
}

type AlertsQuery struct {
	Count  int    `zog:"count"`
	Source string `zog:"source"`
	Days   int    `zog:"days"`
}

var alertsQuerySchema = z.Struct(z.Shape{
	"Count":  z.Int().GTE(0).LTE(pdm.MaxBatchCount),
	"Source": z.String(),
	"Days":   z.Int(),
})

// GetAlerts derives alerts from a fresh live batch by default, or from the
// stored predictions of the last days with source=stored.
func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	var q AlertsQuery
	if errs := alertsQuerySchema.Parse(zhttp.Request(c.Request), &q); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errs})
		return
	}

	switch q.Source {
	case "", "live", "stored":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "source must be live or stored"})
		return
	}

	if q.Source != "stored" {
		alerts, err := rs.PDM.Alert.CurrentAlerts(q.Count)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"alerts": alerts})
		return
	}

	window, err := rs.PDM.History.GetHistorical(common.ClampHistoryDays(q.Days))
	if err != nil {
		abortWithError(c, err)
		return
	}
	records := make([]models.PredictionRecord, 0, len(window.Predictions))
	for _, p := range window.Predictions {
		r, err := models.RecordFromPrediction(p)
		if err != nil {
			abortWithError(c, err)
			return
		}
		records = append(records, r)
	}
	c.JSON(http.StatusOK, gin.H{"alerts": rs.PDM.Alert.AlertsFor(records)})
}

// daysParam clamps the :days path segment to [1, 90]; only a non-integer is
// rejected.
func daysParam(c *gin.Context) (int, bool) {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "days must be an integer"})
		return 0, false
	}
	return common.ClampHistoryDays(days), true
}

func (rs *RestfulServer) GetHistorical(c *gin.Context) {
	days, ok := daysParam(c)
	if !ok {
		return
	}
	window, err := rs.PDM.History.GetHistorical(days)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, window)
}

func (rs *RestfulServer) GetExport(c *gin.Context) {
	days, ok := daysParam(c)
	if !ok {
		return
	}
	csv, err := rs.PDM.History.ExportCSV(days)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=export_%dd.csv", days))
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

func (rs *RestfulServer) GetMaintenance(c *gin.Context) {
	days, ok := daysParam(c)
	if !ok {
		return
	}
	records, err := rs.PDM.History.GetMaintenance(days)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"maintenance": records})
}

type MaintenanceRequest struct {
	EquipmentID string `json:"equipment_id" zog:"equipment_id"`
	Action      string `json:"action" zog:"action"`
	Notes       string `json:"notes" zog:"notes"`
}

var maintenanceRequestSchema = z.Struct(z.Shape{
	"EquipmentID": z.String().Min(1).Required(),
	"Action":      z.String().Min(1).Required(),
	"Notes":       z.String(),
})

func (rs *RestfulServer) PostMaintenance(c *gin.Context) {
	var req MaintenanceRequest
	if errs := maintenanceRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errs})
		return
	}

	record, err := rs.PDM.Maintenance.Record(req.EquipmentID, req.Action, req.Notes)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

type TrainRequest struct {
	NumPoints   int     `json:"num_points" zog:"num_points"`
	Days        int     `json:"days" zog:"days"`
	AnomalyRate float64 `json:"anomaly_rate" zog:"anomaly_rate"`
	Seed        int     `json:"seed" zog:"seed"`
}

var trainRequestSchema = z.Struct(z.Shape{
	"NumPoints":   z.Int().GTE(0).LTE(100_000),
	"Days":        z.Int().GTE(0).LTE(365),
	"AnomalyRate": z.Float64().GTE(0).LTE(1),
	"Seed":        z.Int(),
})

// trainParams starts from the generator defaults and applies every field the
// body names, explicit zeros included.
func trainParams(req TrainRequest, present map[string]json.RawMessage) signal.Params {
	p := signal.DefaultParams()
	if _, ok := present["num_points"]; ok {
		p.NumPoints = req.NumPoints
	}
	if _, ok := present["days"]; ok {
		p.Days = req.Days
	}
	if _, ok := present["anomaly_rate"]; ok {
		p.AnomalyRate = req.AnomalyRate
	}
	if _, ok := present["seed"]; ok {
		p.Seed = int64(req.Seed)
	}
	return p
}

// PostTrainModel retrains on a synthetic set. Without a body it uses the
// generator defaults; a body overrides only the fields it names.
func (rs *RestfulServer) PostTrainModel(c *gin.Context) {
	var samples []models.LabeledSample

	if c.Request.ContentLength > 0 {
		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var present map[string]json.RawMessage
		if err := json.Unmarshal(body, &present); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var req TrainRequest
		if errs := trainRequestSchema.Parse(zhttp.Request(c.Request), &req); errs != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errs})
			return
		}

		if samples, err = signal.NewGenerator(nil).Generate(trainParams(req, present)); err != nil {
			abortWithError(c, err)
			return
		}
	}

	status, err := rs.PDM.Model.Retrain(samples)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (rs *RestfulServer) GetModel(c *gin.Context) {
	c.JSON(http.StatusOK, rs.PDM.Model.Status())
}
