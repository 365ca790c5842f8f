package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	runs     *csv.Writer
	frontier *csv.Writer
	rf, ff   *os.File
}

func NewCSV(runsPath, frontierPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	ff, err := os.Create(frontierPath)
	if err != nil {
		return nil, err
	}

	rw := csv.NewWriter(rf)
	fw := csv.NewWriter(ff)

	if err := rw.Write([]string{"run_id", "time", "model", "n_paths", "horizon_quarters", "objective", "forward_ratio", "option_ratio", "natural_ratio", "expected_npm", "npm_volatility", "cvar_95", "success"}); err != nil {
		return nil, err
	}
	if err := fw.Write([]string{"run_id", "hedge_level", "expected_npm", "npm_volatility", "cvar_95"}); err != nil {
		return nil, err
	}

	rw.Flush()
	if err := rw.Error(); err != nil {
		return nil, err
	}
	fw.Flush()
	if err := fw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{rw, fw, rf, ff}, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Time.Format(time.RFC3339),
		r.Model,
		strconv.Itoa(r.NPaths),
		strconv.Itoa(r.HorizonQuarters),
		r.Objective,
		f(r.Forwards),
		f(r.Options),
		f(r.Natural),
		f(r.ExpectedNPM),
		f(r.NPMVolatility),
		f(r.CVaR95),
		strconv.FormatBool(r.Success),
	})
	if err != nil {
		return err
	}

	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordFrontier(points []FrontierRecord) error {
	for _, p := range points {
		err := j.frontier.Write([]string{
			p.RunID,
			f(p.HedgeLevel),
			f(p.ExpectedNPM),
			f(p.NPMVolatility),
			f(p.CVaR95),
		})
		if err != nil {
			return err
		}
	}

	j.frontier.Flush()
	return j.frontier.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.frontier.Flush()
	if err := j.frontier.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	if err := j.ff.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
