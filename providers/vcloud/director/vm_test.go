package director

import (
	"context"
	"net/http"
	"testing"

	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/providers/devkit"
)

func TestVmAPI_GetVm(t *testing.T) {
	client, transport := newTestClient(t,
		expect(http.MethodGet, vmURI, MediaTypeVm, status(http.StatusOK, MediaTypeVm, "vm.xml")),
	)
	vm, err := client.VmAPI().GetVm(context.Background(), vmURI)
	if err != nil {
		t.Fatalf("get vm: %v", err)
	}
	if vm.Href != vmURI || vm.Name != "vm-1" || vm.Status != StatusPoweredOff || vm.Deployed {
		t.Fatalf("unexpected vm %#v", vm)
	}
	if vm.OperatingSystemSection == nil || vm.OperatingSystemSection.ID != 94 ||
		vm.OperatingSystemSection.Description != "Ubuntu Linux (64-bit)" {
		t.Fatalf("unexpected operating system section %#v", vm.OperatingSystemSection)
	}
	if len(vm.Links) != 2 || vm.Links[0].Rel != "power:powerOn" {
		t.Fatalf("unexpected links %#v", vm.Links)
	}
	verify(t, transport)
}

func TestVmAPI_MissingVmReadsAreEmpty(t *testing.T) {
	client, transport := newTestClient(t,
		expect(http.MethodGet, vmURI, MediaTypeVm, status(http.StatusNotFound, MediaTypeError, "error403.xml")),
		expect(http.MethodGet, vmURI+"/question", MediaTypeAny, status(http.StatusForbidden, MediaTypeError, "error403.xml")),
		expect(http.MethodGet, vmURI+"/screen", MediaTypeAnyImage, status(http.StatusNotFound, "", "")),
	)
	ctx := context.Background()
	api := client.VmAPI()

	vm, err := api.GetVm(ctx, vmURI)
	if err != nil || vm != nil {
		t.Fatalf("vm: expected empty, got %#v %v", vm, err)
	}
	question, err := api.GetPendingQuestion(ctx, vmURI)
	if err != nil || question != nil {
		t.Fatalf("question: expected empty, got %#v %v", question, err)
	}
	image, mediaType, err := api.GetScreenImage(ctx, vmURI)
	if err != nil || image != nil || mediaType != "" {
		t.Fatalf("screen: expected empty, got %d bytes %q %v", len(image), mediaType, err)
	}
	verify(t, transport)
}

func TestVmAPI_MutationsOnMissingVmAreNotFound(t *testing.T) {
	missing := status(http.StatusNotFound, MediaTypeError, "error403.xml")
	forbidden := status(http.StatusForbidden, MediaTypeError, "error403.xml")
	client, transport := newTestClient(t,
		expect(http.MethodPost, vmURI+"/power/action/powerOn", MediaTypeAny, missing),
		expect(http.MethodDelete, vmURI, MediaTypeAny, forbidden),
		expect(http.MethodPut, vmURI+"/question/action/answer", MediaTypeAny, missing),
	)
	ctx := context.Background()
	api := client.VmAPI()

	if _, err := api.PowerOn(ctx, vmURI); !core.IsResourceNotFound(err) {
		t.Fatalf("power on: expected not found, got %v", err)
	}
	if _, err := api.RemoveVm(ctx, vmURI); !core.IsResourceNotFound(err) {
		t.Fatalf("remove: expected not found, got %v", err)
	}
	if err := api.AnswerQuestion(ctx, vmURI, &VmQuestionAnswer{ChoiceID: 1, QuestionID: "12"}); !core.IsResourceNotFound(err) {
		t.Fatalf("answer: expected not found, got %v", err)
	}
	verify(t, transport)
}

func TestVmAPI_BadRequestIsGeneric(t *testing.T) {
	client, transport := newTestClient(t,
		expect(http.MethodPost, vmURI+"/action/deploy", MediaTypeAny, status(http.StatusBadRequest, MediaTypeError, "error400.xml")),
	)
	_, err := client.VmAPI().Deploy(context.Background(), vmURI, &DeployVAppParams{PowerOn: true})
	if !core.IsAPIError(err) || core.IsResourceNotFound(err) {
		t.Fatalf("expected generic api error, got %v", err)
	}
	verify(t, transport)
}

func TestVmAPI_PowerAndActions(t *testing.T) {
	task := func() core.TransportResponse { return status(http.StatusOK, MediaTypeTask, "task.xml") }
	client, transport := newTestClient(t,
		expect(http.MethodPost, vmURI+"/power/action/powerOff", MediaTypeAny, task()),
		expect(http.MethodPost, vmURI+"/power/action/reboot", MediaTypeAny, task()),
		expect(http.MethodPost, vmURI+"/power/action/reset", MediaTypeAny, task()),
		expect(http.MethodPost, vmURI+"/power/action/shutdown", MediaTypeAny, task()),
		expect(http.MethodPost, vmURI+"/power/action/suspend", MediaTypeAny, task()),
		expect(http.MethodPost, vmURI+"/action/consolidate", MediaTypeAny, task()),
		expect(http.MethodPost, vmURI+"/action/discardSuspendedState", MediaTypeAny, task()),
		expect(http.MethodPost, vmURI+"/action/installVMwareTools", MediaTypeAny, task()),
		expect(http.MethodPost, vmURI+"/action/upgradeHardwareVersion", MediaTypeAny, task()),
		withBody(
			expect(http.MethodPost, vmURI+"/action/undeploy", MediaTypeAny, task()),
			MediaTypeUndeployVApp,
			devkit.XMLEquivalent([]byte(`<UndeployVAppParams><UndeployPowerAction>shutdown</UndeployPowerAction></UndeployVAppParams>`)),
		),
		withBody(
			expect(http.MethodPost, vmURI+"/action/deploy", MediaTypeAny, task()),
			MediaTypeDeployVApp,
			devkit.XMLEquivalent([]byte(`<DeployVAppParams powerOn="true"/>`)),
		),
	)
	ctx := context.Background()
	api := client.VmAPI()

	calls := []func(context.Context, string) (*Task, error){
		api.PowerOff, api.Reboot, api.Reset, api.Shutdown, api.Suspend,
		api.Consolidate, api.DiscardSuspendedState, api.InstallVMwareTools, api.UpgradeHardwareVersion,
	}
	for idx, call := range calls {
		got, err := call(ctx, vmURI)
		if err != nil {
			t.Fatalf("call %d: %v", idx, err)
		}
		if got.TaskHref() == "" {
			t.Fatalf("call %d: expected task href", idx)
		}
	}
	if _, err := api.Undeploy(ctx, vmURI, &UndeployVAppParams{UndeployPowerAction: UndeployShutdown}); err != nil {
		t.Fatalf("undeploy: %v", err)
	}
	if _, err := api.Deploy(ctx, vmURI, &DeployVAppParams{PowerOn: true}); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	verify(t, transport)
}

func TestVmAPI_AnswerQuestionNoContent(t *testing.T) {
	client, transport := newTestClient(t,
		withBody(
			expect(http.MethodPut, vmURI+"/question/action/answer", MediaTypeAny, devkit.NoContent()),
			MediaTypeVmPendingAnswer,
			devkit.XMLEquivalent([]byte(`<VmQuestionAnswer><ChoiceId>1</ChoiceId><QuestionId>12</QuestionId></VmQuestionAnswer>`)),
		),
	)
	err := client.VmAPI().AnswerQuestion(context.Background(), vmURI, &VmQuestionAnswer{ChoiceID: 1, QuestionID: "12"})
	if err != nil {
		t.Fatalf("answer question: %v", err)
	}
	verify(t, transport)
}

func TestVmAPI_PendingQuestion(t *testing.T) {
	client, transport := newTestClient(t,
		expect(http.MethodGet, vmURI+"/question", MediaTypeAny,
			status(http.StatusOK, MediaTypeVmPendingQuestion, "question.xml")),
	)
	question, err := client.VmAPI().GetPendingQuestion(context.Background(), vmURI)
	if err != nil {
		t.Fatalf("get question: %v", err)
	}
	if question.QuestionID != "12" || len(question.Choices) != 2 || question.Choices[1].Text != "I moved it" {
		t.Fatalf("unexpected question %#v", question)
	}
	verify(t, transport)
}

func TestVmAPI_Screen(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	client, transport := newTestClient(t,
		expect(http.MethodGet, vmURI+"/screen", MediaTypeAnyImage, devkit.OK("image/png", png)),
		expect(http.MethodPost, vmURI+"/screen/action/acquireTicket", MediaTypeAny,
			status(http.StatusOK, MediaTypeScreenTicket, "screenTicket.xml")),
	)
	ctx := context.Background()
	api := client.VmAPI()

	image, mediaType, err := api.GetScreenImage(ctx, vmURI)
	if err != nil {
		t.Fatalf("screen image: %v", err)
	}
	if mediaType != "image/png" || string(image) != string(png) {
		t.Fatalf("unexpected image %q %v", mediaType, image)
	}
	ticket, err := api.GetScreenTicket(ctx, vmURI)
	if err != nil {
		t.Fatalf("screen ticket: %v", err)
	}
	if ticket.Value != "mks://10.147.115.1/vm-1/ticket=xyz" {
		t.Fatalf("unexpected ticket %q", ticket.Value)
	}
	verify(t, transport)
}

func TestVmAPI_VirtualHardware(t *testing.T) {
	task := status(http.StatusOK, MediaTypeTask, "task.xml")
	client, transport := newTestClient(t,
		expect(http.MethodGet, vmURI+"/virtualHardwareSection/cpu", MediaTypeAny,
			status(http.StatusOK, MediaTypeRasdItem, "cpu.xml")),
		withBody(
			expect(http.MethodPut, vmURI+"/virtualHardwareSection/cpu", MediaTypeAny, task),
			MediaTypeRasdItem,
			devkit.BodyContains("<Item", "<ElementName>2 virtual CPU(s)</ElementName>", "<VirtualQuantity>2</VirtualQuantity>"),
		),
		expect(http.MethodGet, vmURI+"/virtualHardwareSection/disks", MediaTypeAny,
			status(http.StatusOK, MediaTypeRasdItemsList, "disks.xml")),
		withBody(
			expect(http.MethodPut, vmURI+"/virtualHardwareSection/disks", MediaTypeAny, task),
			MediaTypeRasdItemsList,
			devkit.BodyContains("<RasdItemsList", "<InstanceID>2000</InstanceID>"),
		),
	)
	ctx := context.Background()
	api := client.VmAPI()

	cpu, err := api.GetVirtualHardwareSectionCpu(ctx, vmURI)
	if err != nil {
		t.Fatalf("get cpu: %v", err)
	}
	if cpu.ResourceType != ResourceTypeProcessor || cpu.VirtualQuantity == nil || *cpu.VirtualQuantity != 1 {
		t.Fatalf("unexpected cpu %#v", cpu)
	}
	two := int64(2)
	cpu.VirtualQuantity = &two
	cpu.ElementName = "2 virtual CPU(s)"
	if _, err := api.EditVirtualHardwareSectionCpu(ctx, vmURI, cpu); err != nil {
		t.Fatalf("edit cpu: %v", err)
	}

	disks, err := api.GetVirtualHardwareSectionDisks(ctx, vmURI)
	if err != nil {
		t.Fatalf("get disks: %v", err)
	}
	if len(disks.Items) != 2 || disks.Items[1].ResourceType != ResourceTypeDiskDrive {
		t.Fatalf("unexpected disks %#v", disks.Items)
	}
	if len(disks.Items[1].HostResources) != 1 || disks.Items[1].HostResources[0].Capacity != "8192" {
		t.Fatalf("unexpected host resource %#v", disks.Items[1].HostResources)
	}
	if _, err := api.EditVirtualHardwareSectionDisks(ctx, vmURI, disks); err != nil {
		t.Fatalf("edit disks: %v", err)
	}
	verify(t, transport)
}

func TestVmAPI_InsertMedia(t *testing.T) {
	media := testEndpoint + "/media/794eb334-754e-4917-b5a0-5df85cbd61d1"
	client, transport := newTestClient(t,
		withBody(
			expect(http.MethodPut, vmURI+"/media/action/insertMedia", MediaTypeAny, status(http.StatusOK, MediaTypeTask, "task.xml")),
			MediaTypeMediaParams,
			devkit.XMLEquivalent([]byte(`<MediaInsertOrEjectParams><Media href="`+media+`"/></MediaInsertOrEjectParams>`)),
		),
	)
	task, err := client.VmAPI().InsertMedia(context.Background(), vmURI, &MediaInsertOrEjectParams{Media: Reference{Href: media}})
	if err != nil {
		t.Fatalf("insert media: %v", err)
	}
	if task == nil {
		t.Fatalf("expected task")
	}
	verify(t, transport)
}
