package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return NewRepository(db), mock
}

var queryDate = time.Date(2023, 4, 10, 0, 0, 0, 0, time.UTC)

// ── BlockRepository ──

func TestBlockRepo_ListCovering_FilterByRole(t *testing.T) {
	repo, mock := setupMockDB(t)

	start := time.Date(2023, 4, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 4, 19, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"block_id", "block_name", "role", "start_date", "end_date"}).
		AddRow("b-1", "9A", "resident", start, end)

	mock.ExpectQuery(`SELECT \* FROM "blocks" WHERE .*start_date <= \$1 AND end_date >= \$2.*role = \$3.*ORDER BY start_date ASC`).
		WithArgs("2023-04-10", "2023-04-10", "resident").
		WillReturnRows(rows)

	blocks, err := repo.Block.ListCovering(context.Background(), queryDate, "resident")

	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "9A", blocks[0].BlockName)
	assert.Equal(t, "resident", blocks[0].Role)
	assert.True(t, blocks[0].StartDate.Equal(start))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockRepo_ListCovering_AllRoles(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "blocks" WHERE start_date <= \$1 AND end_date >= \$2 ORDER BY start_date ASC`).
		WithArgs("2023-04-10", "2023-04-10").
		WillReturnRows(sqlmock.NewRows([]string{"block_id", "block_name", "role"}))

	blocks, err := repo.Block.ListCovering(context.Background(), queryDate, "")

	require.NoError(t, err)
	assert.Empty(t, blocks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlockRepo_ListCovering_Error(t *testing.T) {
	repo, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Block.ListCovering(context.Background(), queryDate, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

// ── RotationTemplateRepository ──

func TestRotationTemplateRepo_ListForDay(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"template_id", "service", "position", "block_type", "role", "days"}).
		AddRow("t-1", "CCU", "A", "Any", "resident", `{"5":"OFF","6":"MAYBE"}`).
		AddRow("t-2", "Wards", "Red 2", "A", "resident", `{"5":"MAYBE"}`)

	mock.ExpectQuery(`SELECT \* FROM "rotation_templates" WHERE block_type IN \(\$1,\$2\) AND days ->> \$3 IN \(\$4,\$5\) AND role = \$6 ORDER BY service ASC, position ASC`).
		WithArgs("Any", "A", "5", "OFF", "MAYBE", "resident").
		WillReturnRows(rows)

	got, err := repo.RotationTemplate.ListForDay(context.Background(), OffQuery{
		DayNumber:  5,
		BlockTypes: []string{"Any", "A"},
		Statuses:   []string{"OFF", "MAYBE"},
		Role:       "resident",
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "OFF", got[0].Days["5"])
	assert.Equal(t, "Red 2", got[1].Position)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── SiteScheduleRepository ──

func TestSiteScheduleRepo_ListByDate(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"schedule_date", "slots"}).
		AddRow(queryDate, `[{"position":"A","value":"OFF"},{"position":"B","value":"ON"}]`)

	mock.ExpectQuery(`SELECT \* FROM "site_schedules" WHERE schedule_date = \$1`).
		WithArgs("2023-04-10").
		WillReturnRows(rows)

	got, err := repo.SiteSchedule.ListByDate(context.Background(), queryDate)

	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Slots, 2)
	assert.Equal(t, "A", got[0].Slots[0].Position)
	assert.Equal(t, "OFF", got[0].Slots[0].Value)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── ServiceRuleRepository ──

func TestServiceRuleRepo_ListByServices(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"rule_id", "service", "category", "expression"}).
		AddRow("r-1", "CCU", "off", "CCU :position")

	mock.ExpectQuery(`SELECT \* FROM "service_rules" WHERE service IN \(\$1,\$2\) ORDER BY service ASC, category ASC`).
		WithArgs("CCU", "VA ICU").
		WillReturnRows(rows)

	got, err := repo.ServiceRule.ListByServices(context.Background(), []string{"CCU", "VA ICU"})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CCU :position", got[0].Expression)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceRuleRepo_ListByServices_EmptySkipsQuery(t *testing.T) {
	repo, mock := setupMockDB(t)

	got, err := repo.ServiceRule.ListByServices(context.Background(), nil)

	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── RosterRepository ──

func TestRosterRepo_ListByBlock(t *testing.T) {
	repo, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"entry_id", "block_name", "role", "name", "assignment"}).
		AddRow("e-1", "9A", "resident", "Alice", "CCU - A").
		AddRow("e-2", "9A", "resident", "Bob", "Wards Red 2")

	mock.ExpectQuery(`SELECT \* FROM "roster_entries" WHERE block_name = \$1 AND role = \$2 ORDER BY name ASC`).
		WithArgs("9A", "resident").
		WillReturnRows(rows)

	got, err := repo.Roster.ListByBlock(context.Background(), "9A", "resident")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CCU - A", got[0].Assignment)
	require.NoError(t, mock.ExpectationsWereMet())
}
