package repository

import (
	bookingRepo "photostudio/database/repository/booking"
	hallRepo "photostudio/database/repository/hall"
	paymentRepo "photostudio/database/repository/payment"
)

// Re-export the BookingRepository interface and constructors.
type BookingRepository = bookingRepo.Repository

var NewMemoryBookingRepo = bookingRepo.NewMemoryRepo
var NewMongoBookingRepo = bookingRepo.NewMongoRepo

// Re-export the PaymentRepository interface and constructors.
type PaymentRepository = paymentRepo.Repository

var NewMemoryPaymentRepo = paymentRepo.NewMemoryRepo
var NewMongoPaymentRepo = paymentRepo.NewMongoRepo

// Re-export the HallRepository interface and constructor.
type HallRepository = hallRepo.Repository

var NewMemoryHallRepo = hallRepo.NewMemoryRepo
var DefaultHalls = hallRepo.DefaultHalls
