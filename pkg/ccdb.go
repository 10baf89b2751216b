package cffilter

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

// CalibrationStore serves Bethe-Bloch parametrizations by calibration
// path and timestamp. A nil curve with a nil error means no complete
// parametrization is valid at that time.
type CalibrationStore interface {
	GetCurve(path string, timestampMS int64) ([]float64, error)
}

// CalibrationEntry is one labeled parameter of a stored curve.
type CalibrationEntry struct {
	Label string  `db:"Label"`
	Value float64 `db:"Value"`
}

// curveLabels lists the parameters of a complete curve in the order
// expected by BetheBlochAleph, with the resolution last.
var curveLabels = [NCurveParams]string{"bb1", "bb2", "bb3", "bb4", "bb5", "Resolution"}

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

type SQLCalibrationStore struct {
	db *sqlx.DB
}

func NewSQLCalibrationStore(db *sqlx.DB) *SQLCalibrationStore {
	return &SQLCalibrationStore{db: db}
}

// GetCurve reads the parametrization stored under path that is valid
// at timestampMS. Curves with missing parameters count as absent.
func (store *SQLCalibrationStore) GetCurve(path string, timestampMS int64) ([]float64, error) {
	query := fmt.Sprintf("SELECT Label, Value FROM PidCalibrations WHERE Path = '%s' AND ValidFrom <= %d AND ValidTo >= %d",
		path, timestampMS, timestampMS)
	if configuration.Verbosity > 1 {
		logger.Info(query, "database")
	}

	rows, err := store.db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error reading calibration %s: %w", path, err)
		logger.Error(errMessage.Error())
		return nil, errMessage
	}
	defer rows.Close()

	values := make(map[string]float64, NCurveParams)
	for rows.Next() {
		var entry CalibrationEntry
		err = rows.StructScan(&entry)
		if err != nil {
			errMessage := fmt.Errorf("error reading calibration %s: %w", path, err)
			logger.Error(errMessage.Error())
			return nil, errMessage
		}
		values[entry.Label] = entry.Value
	}

	curve := make([]float64, 0, NCurveParams)
	for _, label := range curveLabels {
		value, ok := values[label]
		if !ok {
			return nil, nil
		}
		curve = append(curve, value)
	}
	return curve, nil
}
