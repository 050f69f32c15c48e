// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// SeedSample loads a small dataset into the named-layout schema.
// Existing rows are left alone, so it can run on every start.
//
// Region hierarchy:
//
//	1 India
//	├── 2 North India ── 9 Delhi
//	├── 3 South India
//	│   ├── 5 Tamil Nadu ── 6 Chennai, 7 Coimbatore
//	│   └── 8 Kerala
//	└── 4 East India ── 10 Kolkata
func SeedSample(db *sql.DB) error {
	_, err := db.Exec(sample)
	if err != nil {
		return fmt.Errorf("failed to seed sample data: %w", err)
	}

	return nil
}

const sample = `
INSERT INTO region_dim (region_id, region_name, parent_region_id) VALUES
    (1, 'India', NULL),
    (2, 'North India', 1),
    (3, 'South India', 1),
    (4, 'East India', 1),
    (5, 'Tamil Nadu', 3),
    (6, 'Chennai', 5),
    (7, 'Coimbatore', 5),
    (8, 'Kerala', 3),
    (9, 'Delhi', 2),
    (10, 'Kolkata', 4)
ON CONFLICT DO NOTHING;

INSERT INTO time_dim (time_id, year, month, day) VALUES
    (1, 2023, 6, 15),
    (2, 2024, 3, 10),
    (3, 2024, 6, 20),
    (4, 2024, 11, 5)
ON CONFLICT DO NOTHING;

INSERT INTO standard_dim (standard_id, standard_name) VALUES
    (1, 'Standard 8'),
    (2, 'Standard 10'),
    (3, 'Standard 12')
ON CONFLICT DO NOTHING;

INSERT INTO student_dropout_fact (region_id, time_id, standard_id, no_of_students) VALUES
    (6, 2, 1, 12),
    (6, 2, 2, 8),
    (6, 3, 1, 5),
    (6, 1, 3, 7),
    (7, 2, 1, 4),
    (7, 4, 3, 9),
    (5, 3, 2, 3),
    (8, 2, 1, 6),
    (9, 2, 2, 10),
    (9, 1, 1, 2),
    (10, 4, 1, 11)
ON CONFLICT DO NOTHING;
`
