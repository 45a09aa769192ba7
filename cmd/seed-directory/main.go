// Command seed-directory bootstraps a route directory from a static GTFS
// feed: stops become directory stops, each GTFS route becomes a route
// group with its outbound and inbound stop sequences taken from one
// representative trip per direction. Distances are not part of GTFS stop
// times, so they are left for operators to fill in the workspace.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/jamespfennell/gtfs"
	"workspace.busmate.lk/internal/directory"
	"workspace.busmate.lk/internal/logging"
	"workspace.busmate.lk/internal/models"
)

func main() {
	var (
		gtfsSource   string
		localFile    bool
		directoryURL string
		timeoutMS    int
	)

	flag.StringVar(&gtfsSource, "gtfs", "", "URL or path of a static GTFS zip file")
	flag.BoolVar(&localFile, "local", false, "Treat -gtfs as a local file path")
	flag.StringVar(&directoryURL, "directory-url", "", "Base URL of the route directory")
	flag.IntVar(&timeoutMS, "timeout-ms", 30000, "Per-request directory timeout")
	flag.Parse()

	logger := logging.NewTextLogger(os.Stdout, slog.LevelInfo)

	if gtfsSource == "" || directoryURL == "" {
		fmt.Fprintln(os.Stderr, "both -gtfs and -directory-url are required")
		os.Exit(1)
	}

	staticData, err := loadFeed(gtfsSource, localFile)
	if err != nil {
		logger.Error("failed to load GTFS feed", "source", gtfsSource, "error", err)
		os.Exit(1)
	}
	logger.Info("parsed GTFS feed",
		"stops", len(staticData.Stops),
		"routes", len(staticData.Routes),
		"trips", len(staticData.Trips))

	dir := directory.NewClient(directoryURL, time.Duration(timeoutMS)*time.Millisecond, logger)
	ctx := context.Background()

	stopIDs, err := seedStops(ctx, dir, staticData, logger)
	if err != nil {
		logger.Error("seeding stops failed", "error", err)
		os.Exit(1)
	}
	if err := seedRouteGroups(ctx, dir, staticData, stopIDs, logger); err != nil {
		logger.Error("seeding route groups failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seeding complete")
}

func loadFeed(source string, localFile bool) (*gtfs.Static, error) {
	var b []byte
	var err error

	if localFile {
		b, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading local GTFS file: %w", err)
		}
	} else {
		resp, err := http.Get(source)
		if err != nil {
			return nil, fmt.Errorf("downloading GTFS feed: %w", err)
		}
		defer resp.Body.Close() // nolint
		b, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading GTFS feed: %w", err)
		}
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("parsing GTFS feed: %w", err)
	}
	return staticData, nil
}

// seedStops creates every GTFS stop in the directory and returns the
// mapping from GTFS stop id to directory-assigned id.
func seedStops(ctx context.Context, dir directory.Directory, staticData *gtfs.Static, logger *slog.Logger) (map[string]models.Stop, error) {
	created := make(map[string]models.Stop, len(staticData.Stops))
	for i := range staticData.Stops {
		gs := &staticData.Stops[i]
		stop := models.Stop{Name: gs.Name}
		if gs.Latitude != nil && gs.Longitude != nil {
			stop.Location = &models.Coordinates{Lat: *gs.Latitude, Lon: *gs.Longitude}
		}
		saved, err := dir.CreateStop(ctx, stop)
		if err != nil {
			return nil, fmt.Errorf("creating stop %q: %w", gs.Name, err)
		}
		created[gs.Id] = saved
	}
	logger.Info("seeded stops", "count", len(created))
	return created, nil
}

// seedRouteGroups builds one group per GTFS route. The stop sequence of
// each direction comes from that direction's longest trip, the usual
// full-length service pattern.
func seedRouteGroups(ctx context.Context, dir directory.Directory, staticData *gtfs.Static, stopIDs map[string]models.Stop, logger *slog.Logger) error {
	groups := 0
	for i := range staticData.Routes {
		gr := &staticData.Routes[i]

		outbound := longestTrip(staticData.Trips, gr.Id, 0)
		inbound := longestTrip(staticData.Trips, gr.Id, 1)
		if outbound == nil && inbound == nil {
			continue
		}

		name := gr.LongName
		if name == "" {
			name = gr.ShortName
		}
		group := models.NewRouteGroup(name)
		if outbound != nil {
			group.SetRoute(routeFromTrip(outbound, name, models.DirectionOutbound, gr.Description, stopIDs))
		}
		if inbound != nil {
			group.SetRoute(routeFromTrip(inbound, name, models.DirectionInbound, gr.Description, stopIDs))
		}

		saved, err := dir.SaveRouteGroup(ctx, group)
		if err != nil {
			return fmt.Errorf("saving route group %q: %w", name, err)
		}
		logger.Info("seeded route group", "group_id", saved.ID, "name", name)
		groups++
	}
	logger.Info("seeded route groups", "count", groups)
	return nil
}

// longestTrip picks the trip with the most stop times for one route and
// direction, or nil when the direction has no trips.
func longestTrip(trips []gtfs.ScheduledTrip, routeID string, directionID int) *gtfs.ScheduledTrip {
	var best *gtfs.ScheduledTrip
	for i := range trips {
		t := &trips[i]
		if t.Route == nil || t.Route.Id != routeID {
			continue
		}
		if int(t.DirectionId) != directionID {
			continue
		}
		if best == nil || len(t.StopTimes) > len(best.StopTimes) {
			best = t
		}
	}
	return best
}

func routeFromTrip(trip *gtfs.ScheduledTrip, groupName string, direction models.Direction, description string, stopIDs map[string]models.Stop) models.Route {
	route := models.NewRoute(direction)
	route.Name = fmt.Sprintf("%s (%s)", groupName, direction)
	route.Description = description

	stopTimes := append([]gtfs.ScheduledStopTime(nil), trip.StopTimes...)
	sort.Slice(stopTimes, func(a, b int) bool {
		return stopTimes[a].StopSequence < stopTimes[b].StopSequence
	})

	for _, st := range stopTimes {
		if st.Stop == nil {
			continue
		}
		stop, ok := stopIDs[st.Stop.Id]
		if !ok {
			continue
		}
		rs := models.NewRouteStop(stop, len(route.Stops))
		if len(route.Stops) == 0 {
			rs.DistanceFromStartKm = models.Float64Ptr(0)
		}
		route.Stops = append(route.Stops, rs)
	}

	if n := len(route.Stops); n >= 2 {
		route.StartStopID = route.Stops[0].Stop.ID
		route.StartStopName = route.Stops[0].Stop.Name
		route.EndStopID = route.Stops[n-1].Stop.ID
		route.EndStopName = route.Stops[n-1].Stop.Name
	}
	return route
}
