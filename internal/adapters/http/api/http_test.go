package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/okian/paddock/internal/adapters/http/api"
	service "github.com/okian/paddock/internal/app"
	"github.com/okian/paddock/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func newTestServer() *httptest.Server {
	svc := service.New()
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func postJSON(ts *httptest.Server, path string, body any) (*http.Response, []byte) {
	raw, err := json.Marshal(body)
	So(err, ShouldBeNil)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(raw))
	So(err, ShouldBeNil)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	So(err, ShouldBeNil)
	return resp, buf.Bytes()
}

func worldBody() map[string]any {
	return map[string]any{
		"horses": []map[string]any{
			{"id": "K", "stats": map[string]float64{"speed": 0.95, "jump": 0.93}, "zone": "stable", "slot": "A"},
			{"id": "M", "stats": map[string]float64{"speed": 0.80, "jump": 0.80}, "zone": "stable", "slot": "B"},
			{"id": "N", "stats": map[string]float64{"speed": 0.70, "jump": 0.60}, "zone": "stable", "slot": "C"},
			{"id": "U", "stats": map[string]float64{"speed": 0.97, "jump": 0.96}, "zone": "foals", "slot": "D"},
			{"id": "V", "stats": map[string]float64{"speed": 0.50, "jump": 0.50}, "zone": "foals", "slot": "E"},
		},
		"primary": []string{"speed", "jump"},
		"zones": []map[string]any{
			{"name": "stable", "slots": []string{"A", "B", "C"}},
			{"name": "foals", "slots": []string{"D", "E"}},
		},
	}
}

type rankBody struct {
	Ranking []struct {
		Rank    int    `json:"rank"`
		HorseID string `json:"horse_id"`
		Front   int    `json:"front"`
	} `json:"ranking"`
	Lines []string `json:"lines"`
}

type planBody struct {
	Ranking []struct {
		HorseID string `json:"horse_id"`
	} `json:"ranking"`
	Instructions []struct {
		Op       string `json:"op"`
		HorseID  string `json:"horse_id"`
		FromZone string `json:"from_zone"`
		FromSlot string `json:"from_slot"`
		ToZone   string `json:"to_zone"`
		ToSlot   string `json:"to_slot"`
	} `json:"instructions"`
	Lines []string `json:"lines"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func TestRankEndpoint(t *testing.T) {
	Convey("Given a running server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		Convey("When posting a valid world to /rank", func() {
			resp, body := postJSON(ts, "/rank", worldBody())

			Convey("Then it responds 200 with the full ranking", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(resp.Header.Get("X-Request-Id"), ShouldNotBeEmpty)

				var out rankBody
				So(json.Unmarshal(body, &out), ShouldBeNil)
				So(out.Ranking, ShouldHaveLength, 5)
				So(out.Ranking[0].HorseID, ShouldEqual, "U")
				So(out.Ranking[0].Rank, ShouldEqual, 0)
				So(out.Lines, ShouldHaveLength, 5)
			})
		})

		Convey("When posting a world with an out-of-range stat", func() {
			body := worldBody()
			body["horses"].([]map[string]any)[0]["stats"] = map[string]float64{"speed": 1.5, "jump": 0.5}
			resp, raw := postJSON(ts, "/rank", body)

			Convey("Then it responds 400 validation_error", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				var out errorBody
				So(json.Unmarshal(raw, &out), ShouldBeNil)
				So(out.Code, ShouldEqual, "validation_error")
			})
		})

		Convey("When posting malformed JSON", func() {
			resp, err := http.Post(ts.URL+"/rank", "application/json", bytes.NewReader([]byte("{")))
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using GET instead of POST", func() {
			resp, err := http.Get(ts.URL + "/rank")
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestConsolidateEndpoint(t *testing.T) {
	Convey("Given a running server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		Convey("When posting the breeding scenario to /consolidate", func() {
			body := worldBody()
			body["zone_one"] = "stable"
			body["zone_two"] = "foals"
			body["target_capacity"] = 3
			resp, raw := postJSON(ts, "/consolidate", body)

			Convey("Then it responds 200 with kills before moves", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var out planBody
				So(json.Unmarshal(raw, &out), ShouldBeNil)
				So(out.Instructions, ShouldHaveLength, 3)
				So(out.Instructions[0].Op, ShouldEqual, "kill")
				So(out.Instructions[0].HorseID, ShouldEqual, "V")
				So(out.Instructions[1].HorseID, ShouldEqual, "N")
				So(out.Instructions[2].Op, ShouldEqual, "move")
				So(out.Instructions[2].HorseID, ShouldEqual, "U")
				So(out.Instructions[2].ToSlot, ShouldEqual, "C")
				So(out.Lines[0], ShouldEqual, "Kill horse V")
			})
		})

		Convey("When the target capacity exceeds the zone", func() {
			body := worldBody()
			body["zone_one"] = "stable"
			body["zone_two"] = "foals"
			body["target_capacity"] = 4
			resp, raw := postJSON(ts, "/consolidate", body)

			Convey("Then it responds 422 capacity_error", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusUnprocessableEntity)
				var out errorBody
				So(json.Unmarshal(raw, &out), ShouldBeNil)
				So(out.Code, ShouldEqual, "capacity_error")
			})
		})

		Convey("When zone_one equals zone_two", func() {
			body := worldBody()
			body["zone_one"] = "stable"
			body["zone_two"] = "stable"
			body["target_capacity"] = 3
			resp, raw := postJSON(ts, "/consolidate", body)

			Convey("Then it responds 400 bad_request", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				var out errorBody
				So(json.Unmarshal(raw, &out), ShouldBeNil)
				So(out.Code, ShouldEqual, "bad_request")
			})
		})
	})
}

func TestReorderEndpoint(t *testing.T) {
	Convey("Given a running server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		Convey("When posting a swapped zone to /reorder", func() {
			body := map[string]any{
				"horses": []map[string]any{
					{"id": "K", "stats": map[string]float64{"speed": 0.80}, "zone": "stable", "slot": "A"},
					{"id": "M", "stats": map[string]float64{"speed": 0.90}, "zone": "stable", "slot": "B"},
					{"id": "N", "stats": map[string]float64{"speed": 0.50}, "zone": "stable", "slot": "C"},
				},
				"primary": []string{"speed"},
				"zones":   []map[string]any{{"name": "stable", "slots": []string{"A", "B", "C"}}},
				"zone":    "stable",
			}
			resp, raw := postJSON(ts, "/reorder", body)

			Convey("Then the swap routes through holding in three moves", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var out planBody
				So(json.Unmarshal(raw, &out), ShouldBeNil)
				So(out.Instructions, ShouldHaveLength, 3)
				So(out.Instructions[0].ToZone, ShouldEqual, "holding")
				So(out.Instructions[1].HorseID, ShouldEqual, "M")
				So(out.Instructions[2].FromZone, ShouldEqual, "holding")
				So(out.Lines, ShouldResemble, []string{
					"Move horse K to holding",
					"Move horse M from stable/B to stable/A",
					"Move horse K from holding to stable/B",
				})
			})
		})

		Convey("When the zone is missing from the body", func() {
			body := worldBody()
			resp, _ := postJSON(ts, "/reorder", body)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a server that ranked one world", t, func() {
		ts := newTestServer()
		defer ts.Close()
		resp, _ := postJSON(ts, "/rank", worldBody())
		So(resp.StatusCode, ShouldEqual, http.StatusOK)

		Convey("When fetching /stats", func() {
			resp, err := http.Get(ts.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then counters reflect the traffic", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				var stats map[string]any
				So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
				So(stats["rankRequests"], ShouldEqual, float64(1))
				So(stats["lastHerdSize"], ShouldEqual, float64(5))
			})
		})

		Convey("When posting to /stats", func() {
			resp, err := http.Post(ts.URL+"/stats", "application/json", nil)
			So(err, ShouldBeNil)
			resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a running server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		Convey("When fetching /healthz", func() {
			resp, err := http.Get(ts.URL + "/healthz")
			So(err, ShouldBeNil)
			resp.Body.Close()

			Convey("Then it responds 200", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestRequestIDPropagation(t *testing.T) {
	Convey("Given a running server", t, func() {
		ts := newTestServer()
		defer ts.Close()

		Convey("When the caller supplies a request id", func() {
			req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
			So(err, ShouldBeNil)
			req.Header.Set("X-Request-Id", "caller-id-42")
			resp, err := http.DefaultClient.Do(req)
			So(err, ShouldBeNil)
			resp.Body.Close()

			Convey("Then it is echoed back unchanged", func() {
				So(resp.Header.Get("X-Request-Id"), ShouldEqual, "caller-id-42")
			})
		})
	})
}
