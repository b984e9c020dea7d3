package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mmeshcher/rentcarx-storefront/internal/catalog"
	"github.com/mmeshcher/rentcarx-storefront/internal/model"
)

type homePage struct {
	Cars  []model.Car
	Error string
}

// Home отображает главную страницу со всеми автомобилями.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.ListCars(r.Context(), model.Filters{})
	data := homePage{Cars: cars}
	if err != nil {
		data.Error = "Unable to load cars."
		data.Cars = nil
	}
	h.render(w, r, http.StatusOK, "home", "RentCarX", data)
}

type catalogPage struct {
	catalog.View
	Loading   bool
	Brands    []string
	Models    []string
	FuelTypes []string
}

func (h *Handler) controller(r *http.Request) *catalog.Controller {
	sess := currentSession(r)
	return h.catalogs.Get(sess.ID, sess.Token)
}

// CarList отображает каталог. Первый визит и переход по навигации (fresh=1)
// запускают загрузку без фильтров; страница ждёт завершения текущей загрузки,
// параметр page листает уже загруженный список.
func (h *Handler) CarList(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	if r.URL.Query().Get("fresh") == "1" {
		ctrl.Reset()
	} else {
		ctrl.Start()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.waitTimeout)
	defer cancel()
	_ = ctrl.Wait(ctx)

	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			ctrl.SetPage(page)
		}
	}

	v := ctrl.Snapshot()
	h.render(w, r, http.StatusOK, "cars", "Find your car", catalogPage{
		View:      v,
		Loading:   v.State == catalog.StateLoading || v.State == catalog.StateIdle,
		Brands:    model.Brands(),
		Models:    model.ModelsByBrand(v.Draft.Brand),
		FuelTypes: model.FuelTypes(),
	})
}

func draftFromForm(r *http.Request) model.Draft {
	return model.Draft{
		Brand:        r.PostFormValue("brand"),
		Model:        r.PostFormValue("model"),
		FuelType:     r.PostFormValue("fuelType"),
		MinPrice:     r.PostFormValue("minPrice"),
		MaxPrice:     r.PostFormValue("maxPrice"),
		Availability: model.ParseAvailability(r.PostFormValue("availability")),
	}
}

// CarListDraft сохраняет черновые значения фильтров без загрузки.
func (h *Handler) CarListDraft(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	h.controller(r).UpdateDraft(draftFromForm(r))
	seeOther(w, r, "/car-list")
}

// CarListApply применяет фильтры из формы.
func (h *Handler) CarListApply(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	ctrl := h.controller(r)
	ctrl.UpdateDraft(draftFromForm(r))
	ctrl.Apply()
	seeOther(w, r, "/car-list")
}

// CarListClear сбрасывает все фильтры.
func (h *Handler) CarListClear(w http.ResponseWriter, r *http.Request) {
	h.controller(r).ClearAll()
	seeOther(w, r, "/car-list")
}

// CarListRemoveChip снимает один применённый фильтр.
func (h *Handler) CarListRemoveChip(w http.ResponseWriter, r *http.Request) {
	h.controller(r).RemoveChip(chi.URLParam(r, "key"))
	seeOther(w, r, "/car-list")
}
