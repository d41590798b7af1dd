// Package menu implements the numbered interactive menu over the pet ledger.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ports/pets/internal/models"
	"github.com/go-ports/pets/internal/service"
	"github.com/go-ports/pets/internal/store"
)

var (
	banner = strings.Repeat("=", 50)
	rule   = strings.Repeat("-", 40)
)

// errInputClosed ends the loop when the reader is exhausted.
var errInputClosed = errors.New("input closed")

// Menu drives a Service from line-oriented input.
type Menu struct {
	svc *service.Service
	in  *bufio.Scanner
	out io.Writer
}

// New returns a Menu reading answers from in and writing to out.
// It turns off auto-save on svc: edits made from the menu reach the data
// file only through "save" or a "y" answer on exit.
func New(svc *service.Service, in io.Reader, out io.Writer) *Menu {
	svc.SetAutoSave(false)
	return &Menu{svc: svc, in: bufio.NewScanner(in), out: out}
}

// Run shows the menu until the user exits or input ends.
func (m *Menu) Run() error {
	for {
		m.printMenu()
		choice, err := m.prompt("\nВыберите действие (1-8): ")
		if err != nil {
			return m.finish(err)
		}

		switch choice {
		case "1":
			err = m.add()
		case "2":
			m.println(m.svc.List())
		case "3":
			err = m.find()
		case "4":
			err = m.sort()
		case "5":
			m.stats()
		case "6":
			err = m.save()
		case "7":
			err = m.load()
		case "8":
			return m.finish(m.exit())
		default:
			m.println("✗ Неверный выбор. Введите число от 1 до 8.")
		}
		if err != nil {
			return m.finish(err)
		}
	}
}

// finish maps the end of input to a clean exit.
func (m *Menu) finish(err error) error {
	if errors.Is(err, errInputClosed) {
		m.println("")
		return nil
	}
	return err
}

func (m *Menu) printMenu() {
	m.println("\n" + banner)
	m.println("СИСТЕМА УЧЁТА ПИТОМЦЕВ")
	m.println(banner)
	m.println("1. Добавить питомца")
	m.println("2. Показать всех питомцев")
	m.println("3. Найти питомцев по виду")
	m.println("4. Отсортировать питомцев")
	m.println("5. Показать статистику")
	m.println("6. Сохранить данные")
	m.println("7. Загрузить данные")
	m.println("8. Выйти")
	m.println(banner)
}

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

func (m *Menu) add() error {
	m.println("\n--- Добавление питомца ---")

	name, err := m.prompt("Кличка питомца: ")
	if err != nil {
		return err
	}
	if name == "" {
		m.println("✗ Кличка не может быть пустой")
		return nil
	}

	m.println("Доступные виды: " + speciesChoices())
	species, err := m.prompt("Вид животного: ")
	if err != nil {
		return err
	}

	rawAge, err := m.prompt("Возраст (лет): ")
	if err != nil {
		return err
	}
	age, convErr := strconv.Atoi(rawAge)
	if convErr != nil {
		m.println("✗ Возраст должен быть числом")
		return nil
	}

	p, addErr := m.svc.Add(name, species, age)
	if addErr != nil {
		m.printf("✗ Ошибка: %v\n", addErr)
		return nil
	}
	m.printf("✓ Добавлен питомец: %s (%s, %d лет)\n", p.Name(), p.Species().Label(), p.Age())
	return nil
}

func (m *Menu) find() error {
	m.println("\n--- Поиск питомцев ---")
	m.println("Доступные виды: " + speciesChoices())

	species, err := m.prompt("Введите вид для поиска: ")
	if err != nil {
		return err
	}

	found := m.svc.Find(species)
	if len(found) == 0 {
		m.printf("✗ Питомцы вида '%s' не найдены\n", strings.ToLower(species))
		return nil
	}

	m.printf("\nНайдено %d питомцев:\n", len(found))
	m.println(rule)
	for i, p := range found {
		m.printf("%d. %s, %d лет\n", i+1, p.Name(), p.Age())
	}
	m.println(rule)
	return nil
}

func (m *Menu) sort() error {
	m.println("\n--- Сортировка питомцев ---")
	m.println("1. По имени (А-Я)")
	m.println("2. По возрасту (младшие сначала)")
	m.println("3. По возрасту (старшие сначала)")

	choice, err := m.prompt("Выберите вариант сортировки: ")
	if err != nil {
		return err
	}

	var (
		order service.SortOrder
		done  string
	)
	switch choice {
	case "1":
		order, done = service.SortByName, "по имени"
	case "2":
		order, done = service.SortByAge, "по возрасту (младшие сначала)"
	case "3":
		order, done = service.SortByAgeDesc, "по возрасту (старшие сначала)"
	default:
		m.println("✗ Неверный выбор")
		return nil
	}

	if err := m.svc.Sort(order); err != nil {
		m.printf("✗ Ошибка: %v\n", err)
		return nil
	}
	m.println("✓ Питомцы отсортированы " + done)
	return nil
}

func (m *Menu) stats() {
	stats := m.svc.Stats()

	m.println("\n--- Статистика ---")
	m.printf("Всего питомцев: %d\n", stats.Total)
	if !stats.HasData() {
		return
	}
	m.printf("Средний возраст: %.1f лет\n", *stats.AverageAge)
	m.println("\nРаспределение по видам:")
	for _, sc := range stats.BySpecies {
		m.printf("  %s: %d\n", sc.Species.Label(), sc.Count)
	}
}

func (m *Menu) save() error {
	path, err := m.promptPath()
	if err != nil {
		return err
	}
	if err := m.svc.SaveAs(path); err != nil {
		m.printf("✗ Ошибка при сохранении: %v\n", err)
		return nil
	}
	m.printf("✓ Данные сохранены в %s\n", path)
	return nil
}

func (m *Menu) load() error {
	path, err := m.promptPath()
	if err != nil {
		return err
	}
	if err := m.svc.Load(path); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			m.printf("✗ Файл %s не существует\n", path)
			return nil
		}
		m.printf("✗ Ошибка при загрузке: %v\n", err)
		return nil
	}
	m.printf("✓ Загружено %d питомцев из %s\n", m.svc.Len(), path)
	return nil
}

func (m *Menu) exit() error {
	if m.svc.Len() > 0 {
		answer, err := m.prompt("Сохранить данные перед выходом? (y/n): ")
		if err != nil && !errors.Is(err, errInputClosed) {
			return err
		}
		if strings.EqualFold(answer, "y") {
			if err := m.svc.Save(); err != nil {
				m.printf("✗ Ошибка при сохранении: %v\n", err)
			} else {
				m.printf("✓ Данные сохранены в %s\n", m.svc.DataFile)
			}
		}
	}
	m.println("До свидания!")
	return nil
}

// ---------------------------------------------------------------------------
// I/O helpers
// ---------------------------------------------------------------------------

// prompt writes label and returns the next trimmed input line.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// promptPath asks for a file name, defaulting to the data file.
func (m *Menu) promptPath() (string, error) {
	def := m.svc.DataFile
	answer, err := m.prompt(fmt.Sprintf("Имя файла [%s]: ", filepath.Base(def)))
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func speciesChoices() string {
	all := models.AllSpecies()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = strings.ToLower(string(s))
	}
	return strings.Join(names, ", ")
}
