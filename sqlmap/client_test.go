package sqlmap

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type note struct {
	ID      int64 `sqlmap:"Id,skip"`
	Title   string
	Body    string
	Pinned  bool
	Created time.Time
}

// ClientTestSuite exercises Client against a real SQLite file.
type ClientTestSuite struct {
	suite.Suite
	db       *sql.DB
	client   *Client
	registry *prometheus.Registry
	ctx      context.Context
}

func (s *ClientTestSuite) SetupTest() {
	path := filepath.Join(s.T().TempDir(), "notes.db")
	db, err := sql.Open("sqlite3", path)
	s.Require().NoError(err)
	s.db = db

	_, err = db.Exec(`CREATE TABLE Note (
		Id INTEGER PRIMARY KEY AUTOINCREMENT,
		Title TEXT NOT NULL,
		Body TEXT,
		Pinned INTEGER NOT NULL DEFAULT 0,
		Created TEXT
	)`)
	s.Require().NoError(err)

	s.registry = prometheus.NewRegistry()
	s.client = NewClient(db,
		WithQueryTimeout(5*time.Second),
		WithStatementCapture(true),
		WithMetrics(NewMetrics(s.registry)),
	)
	s.ctx = context.Background()
}

func (s *ClientTestSuite) TearDownTest() {
	s.db.Close()
}

func (s *ClientTestSuite) insert(n note) {
	stmt, err := BuildInsert(n, "Note")
	s.Require().NoError(err)
	affected, err := s.client.ExecuteNonQuery(s.ctx, stmt, nil)
	s.Require().NoError(err)
	s.Equal(int64(1), affected)
}

func (s *ClientTestSuite) TestInsertAndQueryList() {
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	s.insert(note{Title: "it's here", Body: "first", Pinned: true, Created: created})
	s.insert(note{Title: "second", Body: "body", Created: created.Add(time.Hour)})

	notes, err := QueryList[note](s.ctx, s.client, "SELECT * FROM Note ORDER BY Id", nil)
	s.Require().NoError(err)
	s.Require().Len(notes, 2)

	s.Equal(int64(1), notes[0].ID)
	s.Equal("it's here", notes[0].Title)
	s.True(notes[0].Pinned)
	s.True(created.Equal(notes[0].Created))
	s.False(notes[1].Pinned)
}

func (s *ClientTestSuite) TestNamedParameters() {
	s.insert(note{Title: "alpha", Body: "a"})
	s.insert(note{Title: "beta", Body: "b"})

	notes, err := QueryList[note](s.ctx, s.client, "SELECT * FROM Note WHERE Title = $title", Params{"$title": "beta"})
	s.Require().NoError(err)
	s.Require().Len(notes, 1)
	s.Equal("b", notes[0].Body)

	s.Equal("SELECT * FROM Note WHERE Title = 'beta'", s.client.LastStatement())

	affected, err := s.client.ExecuteNonQuery(s.ctx,
		"UPDATE Note SET Pinned = :pinned WHERE Title = :title",
		Params{"pinned": true, "title": "alpha"})
	s.Require().NoError(err)
	s.Equal(int64(1), affected)

	pinned, err := s.client.ExecuteScalar(s.ctx, "SELECT COUNT(*) FROM Note WHERE Pinned = 1", nil)
	s.Require().NoError(err)
	s.Equal(int64(1), AsLong(pinned))
}

func (s *ClientTestSuite) TestQueryRecord() {
	missing, err := QueryRecord[note](s.ctx, s.client, "SELECT * FROM Note WHERE Id = $id", Params{"id": 404})
	s.Require().NoError(err)
	s.Equal(note{}, missing)

	s.insert(note{Title: "only"})
	found, err := QueryRecord[note](s.ctx, s.client, "SELECT * FROM Note WHERE Id = $id", Params{"id": 1})
	s.Require().NoError(err)
	s.Equal("only", found.Title)
}

func (s *ClientTestSuite) TestUpdateStatement() {
	s.insert(note{Title: "draft", Body: "old"})

	stmt, err := BuildUpdate(note{Title: "final", Body: "new"}, "Note", "WHERE Id = 1")
	s.Require().NoError(err)
	_, err = s.client.ExecuteNonQuery(s.ctx, stmt, nil)
	s.Require().NoError(err)

	got, err := QueryRecord[note](s.ctx, s.client, "SELECT * FROM Note WHERE Id = 1", nil)
	s.Require().NoError(err)
	s.Equal("final", got.Title)
	s.Equal("new", got.Body)
}

func (s *ClientTestSuite) TestExecuteInsertReturnsID() {
	s.insert(note{Title: "first"})

	stmt, err := BuildInsert(note{Title: "second"}, "Note")
	s.Require().NoError(err)
	id, err := s.client.ExecuteInsert(s.ctx, stmt, nil)
	s.Require().NoError(err)
	s.Equal(int64(2), id)
}

func (s *ClientTestSuite) TestScalarWithoutRows() {
	value, err := s.client.ExecuteScalar(s.ctx, "SELECT Title FROM Note WHERE Id = 1", nil)
	s.Require().NoError(err)
	s.Nil(value)
}

func (s *ClientTestSuite) TestErrorsAreWrappedAndCounted() {
	_, err := s.client.GetDataTable(s.ctx, "SELECT * FROM Missing", nil)
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to query data table")

	failures := testutil.ToFloat64(s.client.metrics.failures.WithLabelValues(opQuery))
	s.Equal(1.0, failures)
}

func (s *ClientTestSuite) TestConnectionTest() {
	s.Equal("OK", s.client.ConnectionTest(s.ctx))

	s.db.Close()
	s.NotEqual("OK", s.client.ConnectionTest(s.ctx))
}

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestExpandStatement(t *testing.T) {
	got := expandStatement(
		"INSERT INTO Log (Ip, Message) VALUES ($ip, $ipMessage)",
		Params{"$ip": "10.0.0.1", "ipMessage": "hello"},
	)
	if got != "INSERT INTO Log (Ip, Message) VALUES ('10.0.0.1', 'hello')" {
		t.Errorf("unexpected expansion: %s", got)
	}
}

func TestBindParameter(t *testing.T) {
	cases := []struct {
		in   any
		want any
	}{
		{int32(5), int64(5)},
		{uint16(5), int64(5)},
		{true, int64(1)},
		{false, int64(0)},
		{float32(0.5), float64(0.5)},
		{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02 03:04:05"},
		{90 * time.Second, "1m30s"},
		{sql.NullInt64{Int64: 3, Valid: true}, int64(3)},
		{sql.NullInt64{}, nil},
	}
	for _, tc := range cases {
		if got := bindParameter(tc.in); got != tc.want {
			t.Errorf("bindParameter(%#v) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestBindParameterPointers(t *testing.T) {
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	count := 7

	cases := []struct {
		in   any
		want any
	}{
		{(*time.Time)(nil), nil},
		{(*decimal.Decimal)(nil), nil},
		{(*uuid.UUID)(nil), nil},
		{(*string)(nil), nil},
		{&when, "2024-01-02 03:04:05"},
		{&count, int64(7)},
	}
	for _, tc := range cases {
		if got := bindParameter(tc.in); got != tc.want {
			t.Errorf("bindParameter(%#v) = %#v, want %#v", tc.in, got, tc.want)
		}
	}

	args := Params{"$due": (*time.Time)(nil), "id": 1}.args()
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
}

func TestBindParameterLargeUnsigned(t *testing.T) {
	if strconv.IntSize != 64 {
		t.Skip("uint is 32 bits wide")
	}
	if got := bindParameter(^uint(0)); got != "18446744073709551615" {
		t.Errorf("bindParameter(max uint) = %#v", got)
	}
	if got := bindParameter(uint(42)); got != int64(42) {
		t.Errorf("bindParameter(uint(42)) = %#v", got)
	}
}

func (s *ClientTestSuite) TestNilPointerParameterIsNull() {
	s.insert(note{Title: "undated"})

	var due *time.Time
	affected, err := s.client.ExecuteNonQuery(s.ctx, "UPDATE Note SET Created = $due WHERE Id = 1", Params{"$due": due})
	s.Require().NoError(err)
	s.Equal(int64(1), affected)

	created, err := s.client.ExecuteScalar(s.ctx, "SELECT Created FROM Note WHERE Id = 1", nil)
	s.Require().NoError(err)
	s.Nil(created)
	s.Equal("UPDATE Note SET Created = '' WHERE Id = 1", s.client.LastStatement())
}
