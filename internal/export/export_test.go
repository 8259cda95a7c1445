package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/appointease/internal/domain/meeting"
	"github.com/BruksfildServices01/appointease/internal/models"
)

func TestWorkbook(t *testing.T) {
	aps := []models.Appointment{
		{ID: "ap-1", Title: "Consultation", Date: "2030-05-10", StartTime: "10:00", EndTime: "11:00", Status: "approved", User: &models.User{FullName: "Alice"}},
		{ID: "ap-2", Title: "Follow-up", Date: "2030-05-11", StartTime: "09:00", EndTime: "10:00", Status: "pending"},
	}
	ms := []meeting.View{
		{
			Meeting: models.Meeting{ID: "m-1", Title: "Review", Date: "2030-05-12", StartTime: "14:00", EndTime: "15:00",
				Participants: []models.User{{FullName: "Alice"}, {FullName: "Bob"}}},
			Status: meeting.StatusUpcoming,
		},
	}

	data, err := Workbook(aps, ms)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetAppointments)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][1] != "Alice" || rows[1][6] != "approved" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}

	mrows, err := f.GetRows(sheetMeetings)
	if err != nil {
		t.Fatalf("meeting rows: %v", err)
	}
	if len(mrows) != 2 || mrows[1][5] != "upcoming" || mrows[1][8] != "Alice, Bob" {
		t.Fatalf("unexpected meeting rows: %v", mrows)
	}
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Archiver(t *testing.T) {
	put := &fakePutter{}
	a := &S3Archiver{client: put, bucket: "exports-bucket"}
	at := time.Date(2030, 5, 10, 12, 30, 0, 0, time.UTC)

	key, err := a.Archive(context.Background(), at, []byte("xlsx"))
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if key != "exports/20300510T123000Z.xlsx" {
		t.Fatalf("unexpected key %s", key)
	}
	if *put.in.Bucket != "exports-bucket" || string(put.body) != "xlsx" {
		t.Fatalf("unexpected put: bucket=%s body=%q", *put.in.Bucket, put.body)
	}

	put.err = errors.New("denied")
	if _, err := a.Archive(context.Background(), at, nil); err == nil {
		t.Fatal("expected error from failed put")
	}
}

func TestNewS3Archiver(t *testing.T) {
	a := NewS3Archiver(S3Config{Bucket: "b", Region: "us-east-1", Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"})
	if a.bucket != "b" || a.client == nil {
		t.Fatalf("unexpected archiver: %+v", a)
	}
}
