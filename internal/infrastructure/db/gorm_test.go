package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestOpenGormWithDialector(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	// gorm pings once while opening, then OpenGormWithDialector pings again
	mock.ExpectPing()
	mock.ExpectPing()

	dial := mysql.New(mysql.Config{Conn: conn, SkipInitializeWithVersion: true})
	g, err := OpenGormWithDialector(dial)
	if err != nil {
		t.Fatalf("OpenGormWithDialector: %v", err)
	}
	if g == nil {
		t.Fatal("nil gorm handle")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFailure(t *testing.T) {
	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	mock.ExpectPing().WillReturnError(gorm.ErrInvalidDB)

	dial := mysql.New(mysql.Config{Conn: conn, SkipInitializeWithVersion: true})
	if _, err := OpenGormWithDialector(dial); err == nil {
		t.Fatal("expected error when ping fails")
	}
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	g, err := gorm.Open(sqlite.Open("file:migrate?mode=memory&cache=shared"),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(g); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	for _, table := range []string{"protocol_configs", "collateral_vaults", "user_accounts", "loans", "token_accounts"} {
		if !g.Migrator().HasTable(table) {
			t.Fatalf("table %s not created", table)
		}
	}
}
