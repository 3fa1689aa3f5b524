package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	config "github.com/escuelamanejo/backend/configs"
	"github.com/escuelamanejo/backend/database"
	"github.com/escuelamanejo/backend/models"
	"github.com/google/uuid"
)

// GenerateCompletionCertificate renders and stores the course-completion
// certificate for a finished enrollment. Best effort: it runs after the
// attendance transaction has committed and only logs failures.
func GenerateCompletionCertificate(enrollment models.Enrollment) {
	if enrollment.ClassStatus != models.ClassesCompleted {
		return
	}

	var existing models.Certificate
	if err := database.DB.Where("enrollment_id = ?", enrollment.ID).First(&existing).Error; err == nil {
		return
	}

	studentName := enrollment.Student.FirstName + " " + enrollment.Student.LastName
	title := fmt.Sprintf("Curso de Conducción - %d horas", enrollment.TotalHours())

	htmlData, err := renderCertificateHTML(studentName, title)
	if err != nil {
		log.Printf("🔥 Failed to render certificate HTML: %v", err)
		return
	}

	pdfBytes, err := printPDF(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate certificate PDF: %v", err)
		return
	}

	uploadURL, err := uploadCertificate(pdfBytes, enrollment.StudentID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload certificate: %v", err)
		return
	}

	certificate := models.Certificate{
		StudentID:      enrollment.StudentID,
		EnrollmentID:   enrollment.ID,
		Title:          title,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}
	if err := database.DB.Create(&certificate).Error; err != nil {
		log.Printf("🔥 Failed to save certificate record for student %s: %v", enrollment.StudentID, err)
		return
	}
	log.Printf("✅ Generated certificate '%s' for student %s.", title, enrollment.StudentID)
}

func renderCertificateHTML(studentName, title string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificado.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		Title          string
		CompletionDate string
	}{
		StudentName:    studentName,
		Title:          title,
		CompletionDate: time.Now().Format("02/01/2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadCertificate(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificados/%s_%s", studentID, uuid.New().String()),
		Folder:       "escuela_manejo_certificados",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
