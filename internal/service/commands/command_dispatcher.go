package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/nutriwatch/internal/domain/models"
	"github.com/mamadbah2/nutriwatch/internal/service/reporting"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

// HelpText lists the commands field workers can send.
const HelpText = "Supported commands:\n" +
	"/record <age-months> <male|female> <north|south|east|west> <weight-kg> <height-cm> <healthy|moderate|severe> [muac-cm] <name>\n" +
	"/stats\n" +
	"e.g. /record 18 female north 9.4 78 moderate 12.1 Priya Singh"

// RecordWriter appends records to the store.
type RecordWriter interface {
	Add(fields models.NewRecord) models.HealthRecord
}

// StatsProvider computes the dashboard counters.
type StatsProvider interface {
	Stats() models.DashboardStats
}

// Dispatcher executes parsed commands.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	records RecordWriter
	stats   StatsProvider
	logger  *zap.Logger
}

// NewService constructs a command dispatcher.
func NewService(records RecordWriter, stats StatsProvider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{records: records, stats: stats, logger: logger}
}

// HandleCommand runs the command and returns the reply for the sender.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandRecord:
		fields, err := BuildRecord(cmd.Args)
		if err != nil {
			return "", err
		}
		record := s.records.Add(fields)
		s.logger.Info("record added from whatsapp", zap.Int("id", record.ID), zap.String("sender", sender))

		stats := s.stats.Stats()
		message := fmt.Sprintf("Record #%d saved for %s (%dm, %s, %s) on %s.",
			record.ID, record.Name, record.Age, record.Region.Label(), record.NutritionStatus.Label(), record.Date)
		message += fmt.Sprintf("\nAt risk now: %d of %d children.", stats.AtRiskCount, stats.TotalChildren)
		return message, nil
	case models.CommandStats:
		return reporting.FormatSummary("Nutrition dashboard", s.stats.Stats()), nil
	case models.CommandHelp:
		return HelpText, nil
	default:
		return "", ErrUnsupportedCommand
	}
}

// BuildRecord parses /record arguments:
// <age> <gender> <region> <weight> <height> <status> [muac] <name...>
func BuildRecord(args []string) (models.NewRecord, error) {
	if len(args) < 7 {
		return models.NewRecord{}, ErrInvalidArguments
	}

	age, err := strconv.Atoi(args[0])
	if err != nil {
		return models.NewRecord{}, fmt.Errorf("%w: age %q", ErrInvalidArguments, args[0])
	}
	gender, err := models.ParseGender(args[1])
	if err != nil {
		return models.NewRecord{}, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	region, err := models.ParseRegion(args[2])
	if err != nil {
		return models.NewRecord{}, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	weight, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return models.NewRecord{}, fmt.Errorf("%w: weight %q", ErrInvalidArguments, args[3])
	}
	height, err := strconv.ParseFloat(args[4], 64)
	if err != nil {
		return models.NewRecord{}, fmt.Errorf("%w: height %q", ErrInvalidArguments, args[4])
	}
	status, err := models.ParseNutritionStatus(args[5])
	if err != nil {
		return models.NewRecord{}, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}

	// muac is optional; an unparsable value is treated as the first name token.
	var muac float64
	idx := 6
	if v, err := strconv.ParseFloat(args[6], 64); err == nil {
		muac = v
		idx = 7
	}

	name := strings.Join(args[idx:], " ")
	if name == "" {
		return models.NewRecord{}, fmt.Errorf("%w: name is required", ErrInvalidArguments)
	}

	record, err := models.NewRecord{
		Name:            name,
		Age:             age,
		Gender:          gender,
		Region:          region,
		Weight:          weight,
		Height:          height,
		MUAC:            muac,
		NutritionStatus: status,
	}.Normalize()
	if err != nil {
		return models.NewRecord{}, fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return record, nil
}
