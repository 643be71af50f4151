package app

// MinSeatsToStart is the smallest seat configuration a round accepts.
// Centralized so tests and local runs can adjust the rule in one place.
const MinSeatsToStart = 2

// MaxSeats is the table size; the 53-card deck is dealt across at most 4 hands.
const MaxSeats = 4

// DefaultRankTitle is the label every player carries until a title system
// assigns something else.
const DefaultRankTitle = "Citizen"
