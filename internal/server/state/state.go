// Package state holds the authoritative runtime model of the monitoring
// server: one state machine per region and per group, plus the append-only
// incident ledger. All transitions go through the Store so they stay
// serialized per subject.
package state

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"watchdog/internal/config"
)

var ErrUnknownRegion = errors.New("unknown region")

type RegionState string

const (
	RegionInitial RegionState = "initial"
	RegionUp      RegionState = "up"
	RegionWarn    RegionState = "warn"
	RegionDown    RegionState = "down"
)

type GroupState string

const (
	GroupInitial  GroupState = "initial"
	GroupUp       GroupState = "up"
	GroupDown     GroupState = "down"
	GroupIncident GroupState = "incident"
)

const (
	IncidentOpened = "opened"
	IncidentClosed = "closed"
)

// Incident is one opened/closed event on a subject (region or group).
type Incident struct {
	ID        string
	Kind      string
	Subject   string
	Message   string
	Timestamp time.Time
}

// GroupResult is one group cycle outcome pushed by a relay.
type GroupResult struct {
	Group string
	OK    bool
}

type RegionSnapshot struct {
	Name       string
	Status     RegionState
	LastUpdate time.Time
}

type GroupSnapshot struct {
	// Name is the composite "region.group" key.
	Name       string
	Status     GroupState
	LastUpdate time.Time
	Stale      bool
}

// Summary is a consistent snapshot of the whole runtime state.
type Summary struct {
	Regions   []RegionSnapshot
	Groups    []GroupSnapshot
	Incidents []Incident
}

// NotifyFunc receives every ledger append, together with the alert mediums
// configured for the subject (empty means all configured mediums).
type NotifyFunc func(incident Incident, mediums []string)

type regionRuntime struct {
	status         RegionState
	lastUpdate     time.Time
	silenceCounter int
	interval       time.Duration
	threshold      int
	incidentOpen   bool
}

type groupRuntime struct {
	status     GroupState
	failStreak int
	lastUpdate time.Time
	region     string
	threshold  int
	mediums    []string
}

type Store struct {
	mu        sync.Mutex
	logger    *zap.Logger
	notify    NotifyFunc
	regions   map[string]*regionRuntime
	groups    map[string]*groupRuntime
	incidents []Incident
}

func NewStore(logger *zap.Logger, notify NotifyFunc) *Store {
	return &Store{
		logger:  logger,
		notify:  notify,
		regions: make(map[string]*regionRuntime),
		groups:  make(map[string]*groupRuntime),
	}
}

func groupKey(region string, group string) string {
	return region + "." + group
}

// Init creates the runtime entries for every configured region and group,
// all in the initial state with no last update.
func (s *Store) Init(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(cfg)
}

// Reload applies a new configuration: surviving subjects keep their runtime
// state, new subjects start initial, removed subjects are dropped.
func (s *Store) Reload(cfg *config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldRegions := s.regions
	oldGroups := s.groups
	s.regions = make(map[string]*regionRuntime)
	s.groups = make(map[string]*groupRuntime)
	s.install(cfg)

	for name, runtime := range s.regions {
		if previous, survived := oldRegions[name]; survived {
			runtime.status = previous.status
			runtime.lastUpdate = previous.lastUpdate
			runtime.silenceCounter = previous.silenceCounter
			runtime.incidentOpen = previous.incidentOpen
		}
	}
	for key, runtime := range s.groups {
		if previous, survived := oldGroups[key]; survived {
			runtime.status = previous.status
			runtime.failStreak = previous.failStreak
			runtime.lastUpdate = previous.lastUpdate
		}
	}
}

func (s *Store) install(cfg *config.Config) {
	for _, region := range cfg.Regions {
		s.regions[region.Name] = &regionRuntime{
			status:    RegionInitial,
			interval:  region.Interval.Std(),
			threshold: region.Threshold,
		}
		for _, group := range region.Groups {
			s.groups[groupKey(region.Name, group.Name)] = &groupRuntime{
				status:    GroupInitial,
				region:    region.Name,
				threshold: group.Threshold,
				mediums:   group.Mediums,
			}
		}
	}
}

// Ingest applies one relay push. Unknown regions are rejected, unknown
// groups within a known region are logged and skipped.
func (s *Store) Ingest(region string, results []GroupResult) error {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	regionRt, known := s.regions[region]
	if !known {
		return fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	for _, result := range results {
		key := groupKey(region, result.Group)
		groupRt, found := s.groups[key]
		if !found {
			s.logger.Warn("ignoring result for unknown group",
				zap.String("region", region),
				zap.String("group", result.Group))
			continue
		}
		groupRt.lastUpdate = now
		if result.OK {
			wasIncident := groupRt.status == GroupIncident
			groupRt.failStreak = 0
			groupRt.status = GroupUp
			if wasIncident {
				s.appendIncident(IncidentClosed, key,
					fmt.Sprintf("Group %s in region %s recovered", result.Group, region),
					now, groupRt.mediums)
			}
			continue
		}
		groupRt.failStreak++
		if groupRt.failStreak >= groupRt.threshold {
			opened := groupRt.status != GroupIncident
			groupRt.status = GroupIncident
			if opened {
				s.appendIncident(IncidentOpened, key,
					fmt.Sprintf("Group %s in region %s is in incident", result.Group, region),
					now, groupRt.mediums)
			}
		} else {
			groupRt.status = GroupDown
		}
	}

	if regionRt.incidentOpen {
		regionRt.incidentOpen = false
		s.appendIncident(IncidentClosed, region,
			fmt.Sprintf("Region %s is UP again", region), now, nil)
	}
	regionRt.lastUpdate = now
	regionRt.silenceCounter = 0
	regionRt.status = RegionUp

	return nil
}

// LivenessTick advances the silence accounting of every region. A region
// past its silence budget goes down and opens an incident exactly once
// until the next ingest.
func (s *Store) LivenessTick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for name, regionRt := range s.regions {
		if regionRt.lastUpdate.IsZero() {
			continue
		}
		elapsed := now.Sub(regionRt.lastUpdate)
		if elapsed <= regionRt.interval {
			continue
		}
		if regionRt.silenceCounter < regionRt.threshold {
			regionRt.silenceCounter++
		}
		if regionRt.silenceCounter >= regionRt.threshold {
			regionRt.status = RegionDown
			if !regionRt.incidentOpen {
				regionRt.incidentOpen = true
				s.appendIncident(IncidentOpened, name,
					fmt.Sprintf("Region %s is DOWN", name), now, nil)
			}
		} else {
			regionRt.status = RegionWarn
		}
	}
}

// appendIncident must be called with the store lock held. Alert dispatch
// runs in its own goroutine so a slow medium never blocks a transition.
func (s *Store) appendIncident(kind string, subject string, message string, now time.Time, mediums []string) {
	incident := Incident{
		ID:        uuid.NewString(),
		Kind:      kind,
		Subject:   subject,
		Message:   message,
		Timestamp: now,
	}
	s.incidents = append(s.incidents, incident)
	s.logger.Info("incident recorded",
		zap.String("kind", kind),
		zap.String("subject", subject),
		zap.String("message", message))
	if s.notify != nil {
		go s.notify(incident, mediums)
	}
}

// Summary returns a consistent snapshot of regions, groups and incidents.
// Groups belonging to a down region are flagged stale.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := Summary{
		Regions:   make([]RegionSnapshot, 0, len(s.regions)),
		Groups:    make([]GroupSnapshot, 0, len(s.groups)),
		Incidents: make([]Incident, len(s.incidents)),
	}
	for name, regionRt := range s.regions {
		summary.Regions = append(summary.Regions, RegionSnapshot{
			Name:       name,
			Status:     regionRt.status,
			LastUpdate: regionRt.lastUpdate,
		})
	}
	for key, groupRt := range s.groups {
		stale := false
		if regionRt, found := s.regions[groupRt.region]; found {
			stale = regionRt.status == RegionDown
		}
		summary.Groups = append(summary.Groups, GroupSnapshot{
			Name:       key,
			Status:     groupRt.status,
			LastUpdate: groupRt.lastUpdate,
			Stale:      stale,
		})
	}
	copy(summary.Incidents, s.incidents)

	sort.Slice(summary.Regions, func(i, j int) bool {
		return summary.Regions[i].Name < summary.Regions[j].Name
	})
	sort.Slice(summary.Groups, func(i, j int) bool {
		return summary.Groups[i].Name < summary.Groups[j].Name
	})
	return summary
}

// Incidents returns the ledger in append order.
func (s *Store) Incidents() []Incident {
	s.mu.Lock()
	defer s.mu.Unlock()

	incidents := make([]Incident, len(s.incidents))
	copy(incidents, s.incidents)
	return incidents
}

// Incident looks an incident up by id.
func (s *Store) Incident(id string) (Incident, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, incident := range s.incidents {
		if incident.ID == id {
			return incident, true
		}
	}
	return Incident{}, false
}
