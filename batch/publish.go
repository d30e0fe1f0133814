package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/skypies/util/gcp/gcs"

	fb "github.com/kampelmuehler/flightbook-generator"
	"github.com/kampelmuehler/flightbook-generator/log"
	"github.com/kampelmuehler/flightbook-generator/report"
)

// Publisher pushes a finished book up to Cloud Storage, and optionally
// into BigQuery via a load job. The BigQuery dataset may live in a
// different project than the bucket; the service account needs editor
// rights on both.
type Publisher struct {
	Folder    string // GCS bucket the book files land in
	Project   string // BigQuery destination
	Dataset   string
	TableName string

	Log *log.Logger
}

// {{{ p.PublishRecordsGCS

// PublishRecordsGCS writes the records to GCS as newline-delimited JSON,
// shaped for BigQuery ingestion. Returns the number of records written,
// which is zero if the file already exists.
func (p Publisher)PublishRecordsGCS(ctx context.Context, recs []fb.FlightRecord, filename string) (int, error) {
	if exists,err := gcs.Exists(ctx, p.Folder, filename); err != nil {
		return 0,err
	} else if exists {
		return 0,nil
	}

	gcsHandle,err := gcs.OpenRW(ctx, p.Folder, filename, "application/json")
	if err != nil {
		return 0,err
	}
	encoder := json.NewEncoder(gcsHandle.IOWriter())

	n := 0
	for _,rec := range recs {
		n++
		if err := encoder.Encode(rec.ForBigQuery()); err != nil {
			return 0,err
		}
	}

	if err := gcsHandle.Close(); err != nil {
		return 0, err
	}

	p.Log.Infof("GCS bigquery file '%s' successfully written (%d rows)", filename, n)

	return n,nil
}

// }}}
// {{{ p.PublishCSV

// PublishCSV uploads the book's CSV rendition next to the JSON one.
func (p Publisher)PublishCSV(ctx context.Context, rep *report.Report, filename string) error {
	gcsHandle,err := gcs.OpenRW(ctx, p.Folder, filename, "text/csv")
	if err != nil {
		return err
	}

	if err := rep.OutputAsCSV(gcsHandle.IOWriter(), 0); err != nil {
		return err
	}

	return gcsHandle.Close()
}

// }}}
// {{{ p.SubmitLoadJob

// https://cloud.google.com/bigquery/docs/loading-data-cloud-storage#bigquery-import-gcs-file-go
func (p Publisher)SubmitLoadJob(ctx context.Context, gcsfile string) error {
	client,err := bigquery.NewClient(ctx, p.Project)
	if err != nil {
		return fmt.Errorf("Creating bigquery client: %v", err)
	}
	destTable := client.Dataset(p.Dataset).Table(p.TableName)

	gcsSrc := bigquery.NewGCSReference(fmt.Sprintf("gs://%s/%s", p.Folder, gcsfile))
	gcsSrc.SourceFormat = bigquery.JSON
	gcsSrc.AllowJaggedRows = true

	loader := destTable.LoaderFrom(gcsSrc)
	loader.CreateDisposition = bigquery.CreateNever
	job,err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("Submission of load job: %v", err)
	}

	time.Sleep(5 * time.Second)

	if status, err := job.Status(ctx); err != nil {
		return fmt.Errorf("Failure determining status: %v", err)
	} else if err := status.Err(); err != nil {
		detailedErrStr := ""
		for i,innerErr := range status.Errors {
			detailedErrStr += fmt.Sprintf(" [%2d] %v\n", i, innerErr)
		}
		p.Log.Errorf("BigQuery LoadJob error: %v\n--\n%s", err, detailedErrStr)
		return fmt.Errorf("Job error: %v\n--\n%s", err, detailedErrStr)
	} else {
		p.Log.Infof("BigQuery LoadJob status: done=%v, state=%v", status.Done(), status.State)
	}

	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
