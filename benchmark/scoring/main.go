package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	pdmGrpc "liyu1981.xyz/predictive-maintenance/pkg/grpc"
)

var maxClients int = 200
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var grpcClient *pdmGrpc.Client

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

var failures atomic.Int64

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = pdmGrpc.NewClient(conn)

	fmt.Printf("gRPC client created\n")

	startTime := time.Now()
	wg := sync.WaitGroup{}
	for i := range maxClients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doActions(i)
		}()
	}
	wg.Wait()
	usedTime := time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v clients: used time=%v seconds, throughput=%v action/second, failures=%v\n",
		maxClients, usedTime.Seconds(), float64(maxClients*4)/usedTime.Seconds(), failures.Load(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	rndMu.Lock()
	val := min + rnd.Float64()*(max-min)
	rndMu.Unlock()
	multiplier := math.Pow10(decimal)
	return math.Round(val*multiplier) / multiplier
}

func rndSleep() {
	rndMu.Lock()
	d := time.Duration(100+rnd.Int31n(1000)) * time.Millisecond
	rndMu.Unlock()
	time.Sleep(d)
}

func fail(action string, err error) {
	failures.Add(1)
	fmt.Printf("\n%s error: %v\n", action, err)
}

func doActions(client int) {
	actions := []struct {
		name string
		run  func()
	}{
		{"Predictions", getPredictions},
		{"ScoreSamples", postSamples},
		{"Alerts", getAlerts},
		{"Maintenance", func() { postMaintenance(client) }},
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) { actions[i], actions[j] = actions[j], actions[i] })
	rndMu.Unlock()

	for _, action := range actions {
		action.run()
		fmt.Printf("\rexecuted action %v for client %v", action.name, client)
		rndSleep()
	}
}

func httpCheck(action string, resp *http.Response, err error) {
	if err != nil {
		fail(action, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		fail(action, fmt.Errorf("status %d", resp.StatusCode))
	}
}

func getPredictions() {
	if flipCoin() {
		resp, err := http.Get(fmt.Sprintf("http://%s/api/predictions?count=50", httpHostPort))
		httpCheck("GetPredictions", resp, err)
		return
	}
	req, err := pdmGrpc.NewRequest(map[string]any{"count": 50})
	if err == nil {
		_, err = grpcClient.GetPredictions(context.Background(), req)
	}
	if err != nil {
		fail("GetPredictions", err)
	}
}

func postSamples() {
	samples := make([]map[string]float64, 10)
	for i := range samples {
		samples[i] = map[string]float64{
			"temperature": rndFloat64(50, 110, 2),
			"vibration":   rndFloat64(0.2, 2.5, 3),
			"pressure":    rndFloat64(80, 120, 2),
			"current":     rndFloat64(10, 25, 2),
		}
	}
	jsonData, _ := json.Marshal(map[string]any{"samples": samples})
	resp, err := http.Post(fmt.Sprintf("http://%s/api/predictions", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
	httpCheck("PostPredictions", resp, err)
}

func getAlerts() {
	if flipCoin() {
		resp, err := http.Get(fmt.Sprintf("http://%s/api/alerts", httpHostPort))
		httpCheck("GetAlerts", resp, err)
		return
	}
	req, err := pdmGrpc.NewRequest(map[string]any{"source": "stored", "days": 1})
	if err == nil {
		_, err = grpcClient.GetAlerts(context.Background(), req)
	}
	if err != nil {
		fail("GetAlerts", err)
	}
}

func postMaintenance(client int) {
	equipmentID := fmt.Sprintf("EQ-%03d", client%15+1)
	if flipCoin() {
		jsonData, _ := json.Marshal(map[string]string{
			"equipment_id": equipmentID,
			"action":       "inspection",
		})
		resp, err := http.Post(fmt.Sprintf("http://%s/api/maintenance", httpHostPort), "application/json", bytes.NewBuffer(jsonData))
		httpCheck("PostMaintenance", resp, err)
		return
	}
	req, err := pdmGrpc.NewRequest(map[string]any{"equipment_id": equipmentID, "action": "inspection"})
	if err == nil {
		_, err = grpcClient.RecordMaintenance(context.Background(), req)
	}
	if err != nil {
		fail("RecordMaintenance", err)
	}
}
