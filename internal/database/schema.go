package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates every table of the facilities store.  Parents come first
// so the foreign keys resolve.  None of the keys cascade: removing a room
// or cinema is done child-first by the service layer.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS cinemas (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name         VARCHAR(255) NOT NULL,
		location     VARCHAR(255) NOT NULL DEFAULT '',
		total_rooms  INT NOT NULL DEFAULT 0,
		active_rooms INT NOT NULL DEFAULT 0,
		availability INT NOT NULL DEFAULT 0
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS rooms (
		id                       BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		cinema_id                BIGINT UNSIGNED NOT NULL,
		number                   INT NOT NULL,
		status                   ENUM('active','maintenance','stopped') NOT NULL DEFAULT 'active',
		projector                VARCHAR(255) NOT NULL DEFAULT '',
		sound_system             VARCHAR(255) NOT NULL DEFAULT '',
		projector_lamp_model     VARCHAR(255) NULL,
		projector_lamp_hours     BIGINT NULL,
		projector_lamp_max_hours BIGINT NULL,
		projector_type           ENUM('lamp','laser') NULL,
		last_maintenance_a       BIGINT NULL,
		last_maintenance_b       BIGINT NULL,
		last_maintenance_c       BIGINT NULL,
		additional_info          TEXT NULL,
		amplifiers               VARCHAR(255) NULL,
		projector_ip             VARCHAR(64) NULL,
		server                   VARCHAR(255) NULL,
		server_ip                VARCHAR(64) NULL,
		UNIQUE KEY uq_rooms_cinema_number (cinema_id, number),
		CONSTRAINT fk_rooms_cinema FOREIGN KEY (cinema_id) REFERENCES cinemas(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS equipment (
		id               BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		room_id          BIGINT UNSIGNED NOT NULL,
		cinema_id        BIGINT UNSIGNED NOT NULL,
		name             VARCHAR(255) NOT NULL,
		description      TEXT NOT NULL,
		ip_address       VARCHAR(64) NULL,
		status           ENUM('operational','maintenance','replacement') NOT NULL DEFAULT 'operational',
		category         ENUM('projection','sound','climate','electrical','network','other') NOT NULL,
		install_date     BIGINT NULL,
		last_maintenance BIGINT NULL,
		next_maintenance BIGINT NULL,
		warranty_expiry  BIGINT NULL,
		cost             DECIMAL(12,2) NULL,
		KEY idx_equipment_room (room_id),
		KEY idx_equipment_cinema (cinema_id),
		CONSTRAINT fk_equipment_room FOREIGN KEY (room_id) REFERENCES rooms(id),
		CONSTRAINT fk_equipment_cinema FOREIGN KEY (cinema_id) REFERENCES cinemas(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS maintenance_records (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		equipment_id BIGINT UNSIGNED NULL,
		room_id      BIGINT UNSIGNED NOT NULL,
		cinema_id    BIGINT UNSIGNED NOT NULL,
		type         ENUM('preventive','corrective','emergency') NOT NULL,
		category     ENUM('projection','sound','climate','electrical','network','cleaning','other') NOT NULL,
		description  TEXT NOT NULL,
		cost         DECIMAL(12,2) NULL,
		downtime     BIGINT NULL,
		technician   VARCHAR(255) NULL,
		start_time   BIGINT NOT NULL,
		end_time     BIGINT NULL,
		status       ENUM('scheduled','in-progress','completed','cancelled') NOT NULL DEFAULT 'scheduled',
		notes        TEXT NULL,
		KEY idx_maintenance_room (room_id),
		KEY idx_maintenance_cinema (cinema_id),
		KEY idx_maintenance_start (start_time),
		CONSTRAINT fk_maintenance_equipment FOREIGN KEY (equipment_id) REFERENCES equipment(id) ON DELETE SET NULL,
		CONSTRAINT fk_maintenance_room FOREIGN KEY (room_id) REFERENCES rooms(id),
		CONSTRAINT fk_maintenance_cinema FOREIGN KEY (cinema_id) REFERENCES cinemas(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS session_impacts (
		id              BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		room_id         BIGINT UNSIGNED NOT NULL,
		cinema_id       BIGINT UNSIGNED NOT NULL,
		date            BIGINT NOT NULL,
		session_time    VARCHAR(16) NOT NULL,
		impact_type     ENUM('cancelled','delayed','interrupted') NOT NULL,
		cause           ENUM('projection','sound','climate','electrical','network','other') NOT NULL,
		delay_minutes   BIGINT NULL,
		description     TEXT NOT NULL,
		resolved        TINYINT(1) NOT NULL DEFAULT 0,
		resolution_time BIGINT NULL,
		KEY idx_impacts_room (room_id),
		KEY idx_impacts_cinema (cinema_id),
		KEY idx_impacts_date (date),
		CONSTRAINT fk_impacts_room FOREIGN KEY (room_id) REFERENCES rooms(id),
		CONSTRAINT fk_impacts_cinema FOREIGN KEY (cinema_id) REFERENCES cinemas(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		cinema_id    BIGINT UNSIGNED NOT NULL,
		room_id      BIGINT UNSIGNED NULL,
		equipment_id BIGINT UNSIGNED NULL,
		title        VARCHAR(255) NOT NULL,
		description  TEXT NOT NULL,
		priority     ENUM('low','medium','high') NOT NULL,
		status       ENUM('todo','in-progress','done') NOT NULL DEFAULT 'todo',
		assigned_to  VARCHAR(255) NULL,
		due_date     BIGINT NULL,
		category     ENUM('maintenance','cleaning','technical','administrative') NULL,
		KEY idx_tasks_cinema (cinema_id),
		KEY idx_tasks_room (room_id),
		CONSTRAINT fk_tasks_cinema FOREIGN KEY (cinema_id) REFERENCES cinemas(id),
		CONSTRAINT fk_tasks_room FOREIGN KEY (room_id) REFERENCES rooms(id),
		CONSTRAINT fk_tasks_equipment FOREIGN KEY (equipment_id) REFERENCES equipment(id) ON DELETE SET NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS events (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		cinema_id   BIGINT UNSIGNED NOT NULL,
		room_id     BIGINT UNSIGNED NULL,
		title       VARCHAR(255) NOT NULL,
		description TEXT NULL,
		start_time  BIGINT NOT NULL,
		end_time    BIGINT NOT NULL,
		type        ENUM('maintenance','cleaning','inspection','meeting') NOT NULL,
		status      ENUM('scheduled','in-progress','completed','cancelled') NOT NULL DEFAULT 'scheduled',
		KEY idx_events_cinema (cinema_id),
		KEY idx_events_room (room_id),
		KEY idx_events_start (start_time),
		CONSTRAINT fk_events_cinema FOREIGN KEY (cinema_id) REFERENCES cinemas(id),
		CONSTRAINT fk_events_room FOREIGN KEY (room_id) REFERENCES rooms(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	"CREATE TABLE IF NOT EXISTS settings (" +
		"id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY, " +
		"`key` VARCHAR(64) NOT NULL, " +
		"value TEXT NOT NULL, " +
		"UNIQUE KEY uq_settings_key (`key`)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
}

// Migrate creates any missing table.  It is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
