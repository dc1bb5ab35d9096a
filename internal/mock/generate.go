package mock

//go:generate mockgen -source=../features/hotels/repository.go -destination=hotels_store.go -package=mock
//go:generate mockgen -source=../pkg/payment/payment.go -destination=payment_processor.go -package=mock
//go:generate mockgen -source=../features/myhotels/service.go -destination=image_uploader.go -package=mock
