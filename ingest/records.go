package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// ErrMissingColumn is returned when a source file lacks a required
// column. Column names are the contract; column order is irrelevant.
var ErrMissingColumn = errors.New("missing required column")

// HotelRecord is one row of the hotels source file.
type HotelRecord struct {
	HotelID         int64
	Name            string
	City            string
	Country         string
	StarRating      float64
	CleanlinessBase float64
	ComfortBase     float64
	FacilitiesBase  float64
}

// TravellerRecord is one row of the travellers source file.
type TravellerRecord struct {
	UserID        int64
	Country       string
	AgeGroup      string
	TravellerType string
	Gender        string
}

// ReviewRecord is one row of the reviews source file.
type ReviewRecord struct {
	ReviewID           int64
	UserID             int64
	HotelID            int64
	Text               string
	Date               string
	ScoreOverall       float64
	ScoreCleanliness   float64
	ScoreComfort       float64
	ScoreFacilities    float64
	ScoreLocation      float64
	ScoreStaff         float64
	ScoreValueForMoney float64
}

// VisaRecord is one row of the visa-requirements source file.
type VisaRecord struct {
	From     string
	To       string
	VisaType string
}

// header maps column names to their position in a CSV file.
type header map[string]int

func readHeader(r *csv.Reader, required []string) (header, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	h := make(header, len(row))
	for i, name := range row {
		h[name] = i
	}

	for _, name := range required {
		if _, ok := h[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	return h, nil
}

func (h header) str(row []string, col string) string {
	return row[h[col]]
}

func (h header) int(row []string, col string) (int64, error) {
	v, err := strconv.ParseInt(row[h[col]], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}

	return v, nil
}

func (h header) float(row []string, col string) (float64, error) {
	v, err := strconv.ParseFloat(row[h[col]], 64)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", col, err)
	}

	return v, nil
}

// ReadHotels decodes the hotels source file.
func ReadHotels(r io.Reader) ([]HotelRecord, error) {
	cr := csv.NewReader(r)

	h, err := readHeader(cr, []string{
		"hotel_id", "hotel_name", "city", "country",
		"star_rating", "cleanliness_base", "comfort_base", "facilities_base",
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: hotels: %w", err)
	}

	var records []HotelRecord

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, fmt.Errorf("ingest: hotels row %d: %w", line, err)
		}

		rec := HotelRecord{
			Name:    h.str(row, "hotel_name"),
			City:    h.str(row, "city"),
			Country: h.str(row, "country"),
		}

		rec.HotelID, err = h.int(row, "hotel_id")
		if err != nil {
			return nil, fmt.Errorf("ingest: hotels row %d: %w", line, err)
		}

		floats := []struct {
			col string
			dst *float64
		}{
			{"star_rating", &rec.StarRating},
			{"cleanliness_base", &rec.CleanlinessBase},
			{"comfort_base", &rec.ComfortBase},
			{"facilities_base", &rec.FacilitiesBase},
		}
		for _, f := range floats {
			if *f.dst, err = h.float(row, f.col); err != nil {
				return nil, fmt.Errorf("ingest: hotels row %d: %w", line, err)
			}
		}

		records = append(records, rec)
	}
}

// ReadTravellers decodes the travellers source file.
func ReadTravellers(r io.Reader) ([]TravellerRecord, error) {
	cr := csv.NewReader(r)

	h, err := readHeader(cr, []string{
		"user_id", "country", "age_group", "traveller_type", "user_gender",
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: travellers: %w", err)
	}

	var records []TravellerRecord

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, fmt.Errorf("ingest: travellers row %d: %w", line, err)
		}

		rec := TravellerRecord{
			Country:       h.str(row, "country"),
			AgeGroup:      h.str(row, "age_group"),
			TravellerType: h.str(row, "traveller_type"),
			Gender:        h.str(row, "user_gender"),
		}

		rec.UserID, err = h.int(row, "user_id")
		if err != nil {
			return nil, fmt.Errorf("ingest: travellers row %d: %w", line, err)
		}

		records = append(records, rec)
	}
}

// ReadReviews decodes the reviews source file.
func ReadReviews(r io.Reader) ([]ReviewRecord, error) {
	cr := csv.NewReader(r)

	h, err := readHeader(cr, []string{
		"review_id", "user_id", "hotel_id", "review_text", "review_date",
		"score_overall", "score_cleanliness", "score_comfort", "score_facilities",
		"score_location", "score_staff", "score_value_for_money",
	})
	if err != nil {
		return nil, fmt.Errorf("ingest: reviews: %w", err)
	}

	var records []ReviewRecord

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, fmt.Errorf("ingest: reviews row %d: %w", line, err)
		}

		rec := ReviewRecord{
			Text: h.str(row, "review_text"),
			Date: h.str(row, "review_date"),
		}

		ints := []struct {
			col string
			dst *int64
		}{
			{"review_id", &rec.ReviewID},
			{"user_id", &rec.UserID},
			{"hotel_id", &rec.HotelID},
		}
		for _, f := range ints {
			if *f.dst, err = h.int(row, f.col); err != nil {
				return nil, fmt.Errorf("ingest: reviews row %d: %w", line, err)
			}
		}

		floats := []struct {
			col string
			dst *float64
		}{
			{"score_overall", &rec.ScoreOverall},
			{"score_cleanliness", &rec.ScoreCleanliness},
			{"score_comfort", &rec.ScoreComfort},
			{"score_facilities", &rec.ScoreFacilities},
			{"score_location", &rec.ScoreLocation},
			{"score_staff", &rec.ScoreStaff},
			{"score_value_for_money", &rec.ScoreValueForMoney},
		}
		for _, f := range floats {
			if *f.dst, err = h.float(row, f.col); err != nil {
				return nil, fmt.Errorf("ingest: reviews row %d: %w", line, err)
			}
		}

		records = append(records, rec)
	}
}

// ReadVisas decodes the visa-requirements source file.
func ReadVisas(r io.Reader) ([]VisaRecord, error) {
	cr := csv.NewReader(r)

	h, err := readHeader(cr, []string{"from", "to", "visa_type"})
	if err != nil {
		return nil, fmt.Errorf("ingest: visas: %w", err)
	}

	var records []VisaRecord

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, fmt.Errorf("ingest: visas row %d: %w", line, err)
		}

		records = append(records, VisaRecord{
			From:     h.str(row, "from"),
			To:       h.str(row, "to"),
			VisaType: h.str(row, "visa_type"),
		})
	}
}
