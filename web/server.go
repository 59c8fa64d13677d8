// Package web exposes interactive planning over HTTP: a client streams in observed obstacle
// point clouds and then requests plans from the latest observation.
package web

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
	"goji.io"
	"goji.io/pat"

	"github.com/yclihkclr/motion-policy-networks/problems"
	"github.com/yclihkclr/motion-policy-networks/referenceframe"
	"github.com/yclihkclr/motion-policy-networks/rollout"
)

// Timing of emitted trajectories: consecutive policy steps are spaced a control period apart and
// interpolated substeps are spaced evenly inside it.
const (
	stepPeriod    = 0.12
	substepPeriod = 0.012

	interpolationSteps = 5
)

// PointCloudRequest carries an observed scene point cloud, in the robot base frame.
type PointCloudRequest struct {
	Points [][3]float64 `json:"points"`
}

// PointCloudResponse reports how many points survived cleaning.
type PointCloudResponse struct {
	NumPoints int `json:"num_points"`
}

// PlanRequest asks for a trajectory from a start configuration to a target gripper pose, planned
// against the most recently submitted point cloud.
type PlanRequest struct {
	Start  []float64           `json:"start"`
	Target problems.PoseConfig `json:"target"`
}

// Waypoint is a single timestamped configuration of an emitted trajectory.
type Waypoint struct {
	TimeFromStart float64   `json:"time_from_start"`
	Positions     []float64 `json:"positions"`
}

// PlanResponse carries the rollout verdict and the interpolated, timestamped trajectory.
type PlanResponse struct {
	Success   bool       `json:"success"`
	Waypoints []Waypoint `json:"waypoints"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Service serves interactive planning. Plans are serialized: the planner holds per-plan scratch
// state, so only one plan runs at a time and later requests wait.
type Service struct {
	planner *rollout.Planner
	opts    *rollout.PlannerOptions
	logger  golog.Logger

	planMu sync.Mutex

	cloudMu     sync.RWMutex
	latestCloud []r3.Vector

	httpServer *http.Server
	workers    sync.WaitGroup
}

// NewService wires a planner into an HTTP planning service. Observations are pre-sized from the
// planner's own options.
func NewService(planner *rollout.Planner, logger golog.Logger) *Service {
	return &Service{planner: planner, opts: planner.Options(), logger: logger}
}

// Handler returns the route multiplexer of the service.
func (s *Service) Handler() *goji.Mux {
	mux := goji.NewMux()
	mux.HandleFunc(pat.Post("/pointcloud"), s.handleSetPointCloud)
	mux.HandleFunc(pat.Get("/pointcloud"), s.handleGetPointCloud)
	mux.HandleFunc(pat.Post("/plan"), s.handlePlan)
	return mux
}

// Start begins serving on the given address and returns once the listener is up.
func (s *Service) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	httpServer, err := goutils.NewPossiblySecureHTTPServer(s.Handler(), goutils.HTTPServerOptions{
		Addr: listener.Addr().String(),
	})
	if err != nil {
		return err
	}
	s.httpServer = httpServer

	s.logger.Infow("serving", "address", listener.Addr().String())
	s.workers.Add(1)
	goutils.PanicCapturingGo(func() {
		defer s.workers.Done()
		if serveErr := httpServer.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Errorw("error serving http", "error", serveErr)
		}
	})
	return nil
}

// Close shuts the server down and waits for the serve loop to exit.
func (s *Service) Close() error {
	if s.httpServer == nil {
		return nil
	}
	err := s.httpServer.Close()
	s.workers.Wait()
	return err
}

func (s *Service) handleSetPointCloud(w http.ResponseWriter, r *http.Request) {
	var req PointCloudRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	cleaned := cleanPointCloud(req.Points)
	if len(cleaned) < s.opts.NumObstaclePoints {
		writeError(w, http.StatusBadRequest, errors.Errorf(
			"only %d points inside the workspace, need at least %d", len(cleaned), s.opts.NumObstaclePoints))
		return
	}

	s.cloudMu.Lock()
	s.latestCloud = cleaned
	s.cloudMu.Unlock()
	s.logger.Debugw("point cloud updated", "raw", len(req.Points), "cleaned", len(cleaned))
	writeJSON(w, http.StatusOK, PointCloudResponse{NumPoints: len(cleaned)})
}

func (s *Service) handleGetPointCloud(w http.ResponseWriter, r *http.Request) {
	s.cloudMu.RLock()
	cloud := s.latestCloud
	s.cloudMu.RUnlock()

	points := make([][3]float64, len(cloud))
	for i, pt := range cloud {
		points[i] = [3]float64{pt.X, pt.Y, pt.Z}
	}
	writeJSON(w, http.StatusOK, PointCloudRequest{Points: points})
}

func (s *Service) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.cloudMu.RLock()
	cloud := s.latestCloud
	s.cloudMu.RUnlock()
	if len(cloud) == 0 {
		writeError(w, http.StatusConflict, errors.New("no point cloud has been submitted yet"))
		return
	}

	s.planMu.Lock()
	defer s.planMu.Unlock()

	start := time.Now()
	result, err := s.planner.Plan(
		r.Context(),
		referenceframe.FloatsToInputs(req.Start),
		req.Target.Pose(),
		rollout.ObstaclePoints(cloud),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.logger.Infow("plan finished",
		"success", result.Success,
		"steps", len(result.Trajectory)-1,
		"duration", time.Since(start).String(),
	)

	writeJSON(w, http.StatusOK, PlanResponse{
		Success:   result.Success,
		Waypoints: timestampedWaypoints(result.Trajectory),
	})
}

// timestampedWaypoints densifies a trajectory and assigns each waypoint its playback time.
func timestampedWaypoints(trajectory rollout.Trajectory) []Waypoint {
	dense := trajectory.Interpolate(interpolationSteps)
	waypoints := make([]Waypoint, 0, len(dense))
	for k, q := range dense {
		var t float64
		if k > 0 {
			segment := (k - 1) / interpolationSteps
			substep := (k-1)%interpolationSteps + 1
			t = stepPeriod*float64(segment) + substepPeriod*float64(substep)
		}
		waypoints = append(waypoints, Waypoint{
			TimeFromStart: t,
			Positions:     referenceframe.InputsToFloats(q),
		})
	}
	return waypoints
}

// The network was trained on scenes confined to the task workspace; observed points outside it
// are sensor artifacts and get dropped. Two regions survive: the task volume in front of the arm
// and the slab of the mount table under it.
var workspaceRegions = []struct{ minX, maxX, minY, maxY, minZ, maxZ float64 }{
	{0.25, 1.35, -0.3, 1.6, -0.05, 0.35},
	{-0.35, 0.30, -0.5, 0.5, -0.05, 0.05},
}

func cleanPointCloud(points [][3]float64) []r3.Vector {
	cleaned := make([]r3.Vector, 0, len(points))
	for _, pt := range points {
		for _, region := range workspaceRegions {
			if pt[0] > region.minX && pt[0] < region.maxX &&
				pt[1] > region.minY && pt[1] < region.maxY &&
				pt[2] > region.minZ && pt[2] < region.maxZ {
				cleaned = append(cleaned, r3.Vector{X: pt[0], Y: pt[1], Z: pt[2]})
				break
			}
		}
	}
	return cleaned
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	//nolint:errcheck
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorResponse{Error: err.Error()})
}
