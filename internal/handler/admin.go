package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/rentcarx-storefront/internal/inventory"
	"github.com/mmeshcher/rentcarx-storefront/internal/model"
	"github.com/mmeshcher/rentcarx-storefront/internal/service"
	"github.com/mmeshcher/rentcarx-storefront/internal/validation"
)

const maxPhotoSize = 10 << 20

var errPhotoTooLarge = errors.New("photo exceeds size limit")

type dashboardPage struct {
	Total       int
	Available   int
	Unavailable int
	Error       string
}

// AdminDashboard отображает сводку по автопарку.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	var p dashboardPage

	cars, err := h.service.ListCars(r.Context(), model.Filters{})
	if err != nil {
		p.Error = service.UserMessage(err, "Failed to load cars.")
	}
	for _, car := range cars {
		if car.IsAvailable {
			p.Available++
		} else {
			p.Unavailable++
		}
	}
	p.Total = len(cars)

	h.render(w, r, http.StatusOK, "admin", "Dashboard", p)
}

// AdminUsers отображает раздел пользователей.
func (h *Handler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "adminusers", "Users", nil)
}

type column struct {
	Field inventory.Field
	Label string
}

var columns = []column{
	{Field: inventory.FieldBrand, Label: "Brand"},
	{Field: inventory.FieldModel, Label: "Model"},
	{Field: inventory.FieldYear, Label: "Year"},
	{Field: inventory.FieldPricePerDay, Label: "Price Per Day"},
}

type header struct {
	Label string
	Arrow string
	Href  string
}

type carFormValues struct {
	Brand       string
	Model       string
	Year        string
	FuelType    string
	PricePerDay string
	IsAvailable bool
}

type inventoryPage struct {
	inventory.Page
	Headers   []header
	Sorter    inventory.Sorter
	PrevHref  string
	NextHref  string
	Brands    []string
	FuelTypes []string
	Form      carFormValues
	Errors    validation.Errors
	Error     string
	Notice    string
	Confirm   *model.Car
}

func inventoryHref(s inventory.Sorter) string {
	return "/admin/cars?" + s.Query().Encode()
}

func (h *Handler) inventoryPage(r *http.Request) inventoryPage {
	sorter := inventory.FromQuery(r.URL.Query())
	p := inventoryPage{
		Sorter:    sorter,
		Brands:    model.Brands(),
		FuelTypes: model.FuelTypes(),
		Form:      carFormValues{IsAvailable: true},
	}

	cars, err := h.service.ListCars(r.Context(), model.Filters{})
	if err != nil {
		p.Error = service.UserMessage(err, "Failed to load cars.")
	}
	p.Page = sorter.PageOf(cars)
	p.Sorter.Page = p.Page.Page

	for _, c := range columns {
		p.Headers = append(p.Headers, header{
			Label: c.Label,
			Arrow: p.Sorter.Arrow(c.Field),
			Href:  inventoryHref(p.Sorter.Toggle(c.Field)),
		})
	}
	if prev, ok := p.Sorter.Go(p.Page.Page-1, p.Count); ok {
		p.PrevHref = inventoryHref(prev)
	}
	if next, ok := p.Sorter.Go(p.Page.Page+1, p.Count); ok {
		p.NextHref = inventoryHref(next)
	}
	return p
}

// AdminCars отображает таблицу автомобилей с сортировкой, страницами и формой добавления.
func (h *Handler) AdminCars(w http.ResponseWriter, r *http.Request) {
	p := h.inventoryPage(r)
	switch {
	case r.URL.Query().Get("created") == "1":
		p.Notice = "Car created."
	case r.URL.Query().Get("updated") == "1":
		p.Notice = "Car updated."
	case r.URL.Query().Get("deleted") == "1":
		p.Notice = "Car deleted."
	}
	h.render(w, r, http.StatusOK, "admincars", "Cars List", p)
}

func carFormFrom(r *http.Request) (carFormValues, validation.CarForm) {
	v := carFormValues{
		Brand:       strings.TrimSpace(r.FormValue("brand")),
		Model:       strings.TrimSpace(r.FormValue("model")),
		Year:        strings.TrimSpace(r.FormValue("year")),
		FuelType:    strings.TrimSpace(r.FormValue("fuelType")),
		PricePerDay: strings.TrimSpace(r.FormValue("pricePerDay")),
		IsAvailable: r.FormValue("isAvailable") != "",
	}
	return v, validation.CarForm{
		Brand:       v.Brand,
		Model:       v.Model,
		Year:        v.Year,
		FuelType:    v.FuelType,
		PricePerDay: v.PricePerDay,
	}
}

// carInput переводит проверенную форму в данные для бэкенда.
func carInput(v carFormValues) model.CarInput {
	year, _ := strconv.Atoi(v.Year)
	price, _ := strconv.ParseFloat(v.PricePerDay, 64)
	return model.CarInput{
		Brand:       v.Brand,
		Model:       v.Model,
		Year:        year,
		FuelType:    v.FuelType,
		PricePerDay: price,
		IsAvailable: v.IsAvailable,
	}
}

func readPhoto(r *http.Request) (*model.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxPhotoSize {
		return nil, errPhotoTooLarge
	}
	if len(data) == 0 {
		return nil, nil
	}
	return &model.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// AdminCreateCar создаёт автомобиль из формы с необязательной фотографией.
func (h *Handler) AdminCreateCar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize+1<<20)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	values, form := carFormFrom(r)
	if errs := form.Validate(h.now()); !errs.OK() {
		p := h.inventoryPage(r)
		p.Form = values
		p.Errors = errs
		h.render(w, r, http.StatusUnprocessableEntity, "admincars", "Cars List", p)
		return
	}

	in := carInput(values)
	photo, err := readPhoto(r)
	if errors.Is(err, errPhotoTooLarge) {
		p := h.inventoryPage(r)
		p.Form = values
		p.Errors = validation.Errors{"photo": "Photo must be 10 MB or smaller"}
		h.render(w, r, http.StatusRequestEntityTooLarge, "admincars", "Cars List", p)
		return
	}
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	in.Photo = photo

	if _, err := h.service.CreateCar(r.Context(), in); err != nil {
		p := h.inventoryPage(r)
		p.Form = values
		p.Error = service.UserMessage(err, "Failed to create car.")
		h.render(w, r, http.StatusUnprocessableEntity, "admincars", "Cars List", p)
		return
	}

	seeOther(w, r, "/admin/cars?created=1")
}

type editPage struct {
	ID        string
	Form      carFormValues
	Errors    validation.Errors
	Error     string
	Brands    []string
	FuelTypes []string
}

func newEditPage(id string, v carFormValues) editPage {
	return editPage{ID: id, Form: v, Brands: model.Brands(), FuelTypes: model.FuelTypes()}
}

// AdminEditCarForm отображает форму редактирования автомобиля.
func (h *Handler) AdminEditCarForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	car, err := h.service.GetCar(r.Context(), id)
	if err != nil {
		p := newEditPage(id, carFormValues{})
		p.Error = service.UserMessage(err, "Failed to load car details.")
		h.render(w, r, http.StatusNotFound, "admincaredit", "Edit car", p)
		return
	}

	h.render(w, r, http.StatusOK, "admincaredit", "Edit car", newEditPage(id, carFormValues{
		Brand:       car.Brand,
		Model:       car.Model,
		Year:        strconv.Itoa(car.Year),
		FuelType:    car.FuelType,
		PricePerDay: strconv.FormatFloat(car.PricePerDay, 'f', -1, 64),
		IsAvailable: car.IsAvailable,
	}))
}

// AdminUpdateCar сохраняет изменения автомобиля.
func (h *Handler) AdminUpdateCar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	values, form := carFormFrom(r)
	p := newEditPage(id, values)
	if p.Errors = form.Validate(h.now()); !p.Errors.OK() {
		h.render(w, r, http.StatusUnprocessableEntity, "admincaredit", "Edit car", p)
		return
	}

	if _, err := h.service.UpdateCar(r.Context(), id, carInput(values)); err != nil {
		p.Error = service.UserMessage(err, "Failed to update car.")
		h.render(w, r, http.StatusUnprocessableEntity, "admincaredit", "Edit car", p)
		return
	}

	seeOther(w, r, "/admin/cars?updated=1")
}

// AdminDeleteCar удаляет автомобиль после подтверждения.
func (h *Handler) AdminDeleteCar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if r.PostFormValue("confirm") != "yes" {
		p := h.inventoryPage(r)
		p.Confirm = &model.Car{ID: id}
		for _, car := range p.Cars {
			if car.ID == id {
				c := car
				p.Confirm = &c
				break
			}
		}
		h.render(w, r, http.StatusOK, "admincars", "Cars List", p)
		return
	}

	if err := h.service.DeleteCar(r.Context(), id); err != nil {
		p := h.inventoryPage(r)
		p.Error = service.UserMessage(err, "Failed to delete car.")
		h.render(w, r, http.StatusUnprocessableEntity, "admincars", "Cars List", p)
		return
	}

	seeOther(w, r, "/admin/cars?deleted=1")
}
