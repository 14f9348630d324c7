package mysql

// One statement per entry: the driver runs without multiStatements.
var schemaSQL = []string{`
CREATE TABLE IF NOT EXISTS rooms (
  number      VARCHAR(32)   NOT NULL PRIMARY KEY,
  kind        VARCHAR(16)   NOT NULL,
  capacity    INT           NOT NULL,
  base_price  DOUBLE        NOT NULL,
  wifi        BOOLEAN       NULL,
  tv          BOOLEAN       NULL,
  minibar     BOOLEAN       NULL,
  jacuzzi     BOOLEAN       NULL,
  balcony     BOOLEAN       NULL,
  luxury_tax  DOUBLE        NULL,
  position    INT           NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS customers (
  id          VARCHAR(32)   NOT NULL PRIMARY KEY,
  first_name  VARCHAR(128)  NOT NULL,
  last_name   VARCHAR(128)  NOT NULL,
  email       VARCHAR(255)  NOT NULL,
  phone       VARCHAR(32)   NOT NULL,
  points      INT           NOT NULL DEFAULT 0,
  position    INT           NOT NULL,
  KEY idx_customers_email (email)
)`, `
CREATE TABLE IF NOT EXISTS reservations (
  id              VARCHAR(32)   NOT NULL PRIMARY KEY,
  customer_email  VARCHAR(255)  NOT NULL,
  room_number     VARCHAR(32)   NOT NULL,
  check_in        DATE          NOT NULL,
  check_out       DATE          NOT NULL,
  status          VARCHAR(16)   NOT NULL,
  position        INT           NOT NULL
)`,
}

// Children first so a future FK never blocks the wipe.
var wipeSQL = []string{
	"DELETE FROM reservations",
	"DELETE FROM customers",
	"DELETE FROM rooms",
}

const insertRoomsPrefix = "INSERT INTO rooms\n  (number, kind, capacity, base_price, wifi, tv, minibar, jacuzzi, balcony, luxury_tax, position)\nVALUES "

const insertCustomersPrefix = "INSERT INTO customers\n  (id, first_name, last_name, email, phone, points, position)\nVALUES "

const insertReservationsPrefix = "INSERT INTO reservations\n  (id, customer_email, room_number, check_in, check_out, status, position)\nVALUES "

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// position keeps collection order stable across a save/load round trip.
const selectRoomsSQL = `
SELECT number, kind, capacity, base_price, wifi, tv, minibar, jacuzzi, balcony, luxury_tax
FROM rooms
ORDER BY position
`

const selectCustomersSQL = `
SELECT id, first_name, last_name, email, phone, points
FROM customers
ORDER BY position
`

const selectReservationsSQL = `
SELECT id, customer_email, room_number, check_in, check_out, status
FROM reservations
ORDER BY position
`
