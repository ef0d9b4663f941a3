// Package repo reads the per-subscription export directories and writes the
// analysis artifacts back next to them.
package repo

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ThojoUno/az-alert-analysis/internal/models"
	"github.com/ThojoUno/az-alert-analysis/internal/normalize"
	"github.com/ThojoUno/az-alert-analysis/internal/utils"
)

const (
	activityFile    = "activity_alerts.json"
	historyFile     = "alert_history.json"
	metricRulesFile = "metric_alert_rules.json"
	identityJSON    = "subscription_info.json"
	identityText    = "subscription_info.txt"
)

// SubscriptionStore resolves subscription export directories under a single
// root. Missing files degrade to empty inputs; only unreadable directories
// surface as errors.
type SubscriptionStore struct {
	root   string
	logger *slog.Logger
}

func NewSubscriptionStore(root string, logger *slog.Logger) *SubscriptionStore {
	return &SubscriptionStore{root: root, logger: logger}
}

// Discover lists the subscription_* directories under the root, sorted by
// name so runs are deterministic.
func (s *SubscriptionStore) Discover() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, utils.NewAppError("repo.discover", "read input root", err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), "subscription_") {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// LoadActivity reads a subscription's activity log export. A missing file is
// an empty export; a malformed one is logged and treated the same so a bad
// subscription cannot sink the batch.
func (s *SubscriptionStore) LoadActivity(dir string) []normalize.ActivityEvent {
	var events []normalize.ActivityEvent
	s.loadArray(dir, activityFile, &events)
	return events
}

// LoadHistory reads a subscription's alert management history export.
func (s *SubscriptionStore) LoadHistory(dir string) []normalize.HistoryAlert {
	var alerts []normalize.HistoryAlert
	s.loadArray(dir, historyFile, &alerts)
	return alerts
}

// CountMetricRules returns how many metric alert rules the export captured.
// The rules themselves feed nothing; the count is logged for operators.
func (s *SubscriptionStore) CountMetricRules(dir string) int {
	var rules []json.RawMessage
	s.loadArray(dir, metricRulesFile, &rules)
	return len(rules)
}

func (s *SubscriptionStore) loadArray(dir, name string, out any) {
	path := filepath.Join(s.root, dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("unreadable input file, treating as empty",
				"path", path, "error", err)
		}
		return
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("malformed input file, treating as empty",
			"path", path, "error", err)
	}
}

// Identity resolves who a subscription directory belongs to. The structured
// subscription_info.json wins; the legacy two-line text file is the fallback;
// with neither, both fields read "Unknown".
func (s *SubscriptionStore) Identity(dir string) models.SubscriptionIdentity {
	jsonPath := filepath.Join(s.root, dir, identityJSON)
	if data, err := os.ReadFile(jsonPath); err == nil {
		var identity models.SubscriptionIdentity
		if err := json.Unmarshal(data, &identity); err == nil {
			if identity.ID == "" {
				identity.ID = "Unknown"
			}
			if identity.Name == "" {
				identity.Name = "Unknown"
			}
			return identity
		}
		s.logger.Warn("malformed subscription_info.json, trying legacy file",
			"path", jsonPath, "error", err)
	}

	identity := models.UnknownIdentity()
	textPath := filepath.Join(s.root, dir, identityText)
	file, err := os.Open(textPath)
	if err != nil {
		return identity
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if value, ok := strings.CutPrefix(line, "Subscription ID:"); ok {
			if value = strings.TrimSpace(value); value != "" {
				identity.ID = value
			}
		}
		if value, ok := strings.CutPrefix(line, "Subscription Name:"); ok {
			if value = strings.TrimSpace(value); value != "" {
				identity.Name = value
			}
		}
	}
	return identity
}

// WriteAnalysis persists a subscription's analysis document inside its own
// directory.
func (s *SubscriptionStore) WriteAnalysis(dir, name string, doc *models.AnalysisDocument) error {
	return s.writeJSON(filepath.Join(s.root, dir, name), doc, "repo.write_analysis")
}

// LoadAnalysis reads a previously written analysis document. A missing file
// returns (nil, nil) so the rollup can degrade that subscription to zero.
func (s *SubscriptionStore) LoadAnalysis(dir, name string) (*models.AnalysisDocument, error) {
	path := filepath.Join(s.root, dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, utils.NewAppError("repo.load_analysis", fmt.Sprintf("read %s", path), err)
	}
	var doc models.AnalysisDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, utils.NewAppError("repo.load_analysis", fmt.Sprintf("decode %s", path), err)
	}
	return &doc, nil
}

// WriteTenant persists the tenant document at the input root.
func (s *SubscriptionStore) WriteTenant(name string, doc *models.TenantDocument) error {
	return s.writeJSON(filepath.Join(s.root, name), doc, "repo.write_tenant")
}

func (s *SubscriptionStore) writeJSON(path string, doc any, op string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return utils.NewAppError(op, "encode document", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return utils.NewAppError(op, fmt.Sprintf("write %s", path), err)
	}
	return nil
}
